package coil

import "encoding/binary"

// RelocationEntrySize is the encoded size of one relocation record.
const RelocationEntrySize = 24

// Relocation asks the linker to patch a location with a value derived
// from a symbol's final address plus an addend.
//
// Offset packs a 1-based section index into the high 32 bits and the
// byte offset within that section into the low 32 bits. This caps any
// single section at 4 GiB and section indices at 32 bits; both limits
// are part of the on-disk format.
type Relocation struct {
	Offset    uint64
	SymbolIdx uint32
	Type      RelocationType
	Addend    int64
}

// PackRelocOffset builds the packed Offset field from a 1-based section
// index and an in-section byte offset.
func PackRelocOffset(sectionIdx uint32, offset uint32) uint64 {
	return uint64(sectionIdx)<<32 | uint64(offset)
}

// SectionIdx returns the 1-based index of the section the relocation
// patches.
func (r *Relocation) SectionIdx() uint32 {
	return uint32(r.Offset >> 32)
}

// SectionOffset returns the byte offset within the section.
func (r *Relocation) SectionOffset() uint32 {
	return uint32(r.Offset)
}

func (r *Relocation) encode(buf []byte) {
	le := binary.LittleEndian
	le.PutUint64(buf[0:], r.Offset)
	le.PutUint32(buf[8:], r.SymbolIdx)
	le.PutUint32(buf[12:], uint32(r.Type))
	le.PutUint64(buf[16:], uint64(r.Addend))
}

func decodeRelocation(buf []byte) Relocation {
	le := binary.LittleEndian
	return Relocation{
		Offset:    le.Uint64(buf[0:]),
		SymbolIdx: le.Uint32(buf[8:]),
		Type:      RelocationType(le.Uint32(buf[12:])),
		Addend:    int64(le.Uint64(buf[16:])),
	}
}
