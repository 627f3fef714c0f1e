package coil

import "encoding/binary"

// SymbolEntrySize is the encoded size of one symbol table record.
const SymbolEntrySize = 32

// Symbol references a location by section and offset. SectionIdx is
// 1-based: N names the object's section N-1, and 0 means undefined (or,
// for absolute symbols, no defining section). LOCAL-binding symbols are
// file-private and never participate in cross-file resolution.
type Symbol struct {
	NameIdx    uint32
	SectionIdx uint32
	Value      uint64
	Size       uint64
	Type       SymbolType
	Binding    SymbolBinding
	Visibility SymbolVisibility
}

// IsUndefined reports whether the symbol has no defining section.
func (s *Symbol) IsUndefined() bool {
	return s.SectionIdx == 0 && s.Type != SymbolCommon
}

func (s *Symbol) encode(buf []byte) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:], s.NameIdx)
	le.PutUint32(buf[4:], s.SectionIdx)
	le.PutUint64(buf[8:], s.Value)
	le.PutUint64(buf[16:], s.Size)
	le.PutUint16(buf[24:], uint16(s.Type))
	le.PutUint16(buf[26:], uint16(s.Binding))
	le.PutUint16(buf[28:], uint16(s.Visibility))
	// buf[30:32] reserved.
}

func decodeSymbol(buf []byte) Symbol {
	le := binary.LittleEndian
	return Symbol{
		NameIdx:    le.Uint32(buf[0:]),
		SectionIdx: le.Uint32(buf[4:]),
		Value:      le.Uint64(buf[8:]),
		Size:       le.Uint64(buf[16:]),
		Type:       SymbolType(le.Uint16(buf[24:])),
		Binding:    SymbolBinding(le.Uint16(buf[26:])),
		Visibility: SymbolVisibility(le.Uint16(buf[28:])),
	}
}
