package coil

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the encoded size of the object header in bytes.
const HeaderSize = 84

// Header is the fixed-layout record at offset 0 of every COIL object.
// All multi-byte fields are encoded little-endian regardless of the
// Endianness field, which describes section payload contents only.
type Header struct {
	Magic        [4]byte
	Version      uint32
	Flags        ObjectFlag
	TargetPU     ProcessingUnit
	TargetArch   Architecture
	TargetMode   Mode
	EntryPoint   uint64
	SectionCount uint32
	SymbolCount  uint32
	RelocCount   uint32
	SectionOff   uint64
	SymbolOff    uint64
	StringOff    uint64
	RelocOff     uint64
	Endianness   uint8
}

// NewHeader returns a header with the current version, little-endian
// payloads and no target triple set.
func NewHeader() Header {
	return Header{
		Magic:      Magic,
		Version:    CurrentVersion,
		Endianness: EndianLittle,
	}
}

// Validate checks the invariants every readable header must satisfy.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: got %q", ErrBadMagic, h.Magic[:])
	}
	major, _, _ := VersionParts(h.Version)
	if major != VersionMajor {
		return fmt.Errorf("%w: object major version %d, supported %d",
			ErrVersion, major, VersionMajor)
	}
	if h.SectionCount > 0 && h.SectionOff == 0 {
		return fmt.Errorf("%w: section count %d with zero section table offset",
			ErrBadHeader, h.SectionCount)
	}
	if h.SymbolCount > 0 && h.SymbolOff == 0 {
		return fmt.Errorf("%w: symbol count %d with zero symbol table offset",
			ErrBadHeader, h.SymbolCount)
	}
	if h.RelocCount > 0 && h.RelocOff == 0 {
		return fmt.Errorf("%w: relocation count %d with zero relocation table offset",
			ErrBadHeader, h.RelocCount)
	}
	if h.StringOff == 0 {
		return fmt.Errorf("%w: zero string table offset", ErrBadHeader)
	}
	if h.Endianness != EndianLittle && h.Endianness != EndianBig {
		return fmt.Errorf("%w: endianness %d", ErrBadHeader, h.Endianness)
	}
	return nil
}

func (h *Header) encode(buf []byte) {
	le := binary.LittleEndian
	copy(buf[0:4], h.Magic[:])
	le.PutUint32(buf[4:], h.Version)
	le.PutUint32(buf[8:], uint32(h.Flags))
	le.PutUint32(buf[12:], uint32(h.TargetPU))
	le.PutUint32(buf[16:], uint32(h.TargetArch))
	le.PutUint32(buf[20:], uint32(h.TargetMode))
	le.PutUint64(buf[24:], h.EntryPoint)
	le.PutUint32(buf[32:], h.SectionCount)
	le.PutUint32(buf[36:], h.SymbolCount)
	le.PutUint32(buf[40:], h.RelocCount)
	le.PutUint64(buf[44:], h.SectionOff)
	le.PutUint64(buf[52:], h.SymbolOff)
	le.PutUint64(buf[60:], h.StringOff)
	le.PutUint64(buf[68:], h.RelocOff)
	buf[76] = h.Endianness
	// buf[77:84] is reserved padding, left zero.
}

func decodeHeader(buf []byte) Header {
	le := binary.LittleEndian
	var h Header
	copy(h.Magic[:], buf[0:4])
	h.Version = le.Uint32(buf[4:])
	h.Flags = ObjectFlag(le.Uint32(buf[8:]))
	h.TargetPU = ProcessingUnit(le.Uint32(buf[12:]))
	h.TargetArch = Architecture(le.Uint32(buf[16:]))
	h.TargetMode = Mode(le.Uint32(buf[20:]))
	h.EntryPoint = le.Uint64(buf[24:])
	h.SectionCount = le.Uint32(buf[32:])
	h.SymbolCount = le.Uint32(buf[36:])
	h.RelocCount = le.Uint32(buf[40:])
	h.SectionOff = le.Uint64(buf[44:])
	h.SymbolOff = le.Uint64(buf[52:])
	h.StringOff = le.Uint64(buf[60:])
	h.RelocOff = le.Uint64(buf[68:])
	h.Endianness = buf[76]
	return h
}
