package coil

import "encoding/binary"

// SectionEntrySize is the encoded size of one section table record.
const SectionEntrySize = 52

// Section is one named, typed byte region of an object. Data is absent
// for BSS sections, which carry a size only. Section identity for
// linking purposes is the name, not the table index.
type Section struct {
	Type    SectionType
	Flags   SectionFlag
	Offset  uint64 // file offset of the payload, set by Encode
	Size    uint64
	Addr    uint64 // virtual address, 0 unless assigned
	Align   uint64 // power of two
	NameIdx uint32 // string table offset of the name
	Link    uint32 // type-dependent auxiliary index
	Info    uint32 // type-dependent auxiliary value

	Data []byte
}

func (s *Section) encode(buf []byte) {
	le := binary.LittleEndian
	le.PutUint32(buf[0:], uint32(s.Type))
	le.PutUint32(buf[4:], uint32(s.Flags))
	le.PutUint64(buf[8:], s.Offset)
	le.PutUint64(buf[16:], s.Size)
	le.PutUint64(buf[24:], s.Addr)
	le.PutUint64(buf[32:], s.Align)
	le.PutUint32(buf[40:], s.NameIdx)
	le.PutUint32(buf[44:], s.Link)
	le.PutUint32(buf[48:], s.Info)
}

func decodeSection(buf []byte) Section {
	le := binary.LittleEndian
	return Section{
		Type:    SectionType(le.Uint32(buf[0:])),
		Flags:   SectionFlag(le.Uint32(buf[4:])),
		Offset:  le.Uint64(buf[8:]),
		Size:    le.Uint64(buf[16:]),
		Addr:    le.Uint64(buf[24:]),
		Align:   le.Uint64(buf[32:]),
		NameIdx: le.Uint32(buf[40:]),
		Link:    le.Uint32(buf[44:]),
		Info:    le.Uint32(buf[48:]),
	}
}
