package coil

import (
	"fmt"
	"os"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/utils"
)

// ObjectFile is one compiled unit's container: a header, ordered
// section/symbol/relocation tables and an interned string table.
// Mutate it only through the Add/Remove methods so the header counts
// stay consistent with the tables.
type ObjectFile struct {
	Header      Header
	Sections    []Section
	Symbols     []Symbol
	Relocations []Relocation
	Strings     *StringTable
}

// NewObjectFile returns an empty object with a default header and the
// empty string interned at offset 0.
func NewObjectFile() *ObjectFile {
	return &ObjectFile{
		Header:  NewHeader(),
		Strings: NewStringTable(),
	}
}

// SetTarget sets the header's target triple.
func (o *ObjectFile) SetTarget(pu ProcessingUnit, arch Architecture, mode Mode) {
	o.Header.TargetPU = pu
	o.Header.TargetArch = arch
	o.Header.TargetMode = mode
}

// AddString interns s into the object's string table.
func (o *ObjectFile) AddString(s string) uint32 {
	return o.Strings.Add(s)
}

// GetString returns the string at off, or "" if off is out of range.
func (o *ObjectFile) GetString(off uint32) string {
	return o.Strings.Get(off)
}

// AddSection appends sec and returns its 0-based table index.
func (o *ObjectFile) AddSection(sec Section) int {
	o.Sections = append(o.Sections, sec)
	o.Header.SectionCount = uint32(len(o.Sections))
	return len(o.Sections) - 1
}

// AddSymbol appends sym and returns its 0-based table index.
func (o *ObjectFile) AddSymbol(sym Symbol) int {
	o.Symbols = append(o.Symbols, sym)
	o.Header.SymbolCount = uint32(len(o.Symbols))
	return len(o.Symbols) - 1
}

// AddRelocation appends rel and returns its 0-based table index.
func (o *ObjectFile) AddRelocation(rel Relocation) int {
	o.Relocations = append(o.Relocations, rel)
	o.Header.RelocCount = uint32(len(o.Relocations))
	return len(o.Relocations) - 1
}

// FindSection returns the index of the section named name, or -1.
func (o *ObjectFile) FindSection(name string) int {
	off, ok := o.Strings.Lookup(name)
	if !ok {
		return -1
	}
	for i := range o.Sections {
		if o.Sections[i].NameIdx == off {
			return i
		}
	}
	return -1
}

// FindSymbol returns the index of the symbol named name, or -1.
func (o *ObjectFile) FindSymbol(name string) int {
	off, ok := o.Strings.Lookup(name)
	if !ok {
		return -1
	}
	for i := range o.Symbols {
		if o.Symbols[i].NameIdx == off {
			return i
		}
	}
	return -1
}

// SectionName returns the name of section i.
func (o *ObjectFile) SectionName(i int) string {
	return o.Strings.Get(o.Sections[i].NameIdx)
}

// SymbolName returns the name of symbol i.
func (o *ObjectFile) SymbolName(i int) string {
	return o.Strings.Get(o.Symbols[i].NameIdx)
}

// RemoveSection drops the section named name. Symbol and relocation
// section references are adjusted: references to the removed section
// become 0 (undefined), references past it shift down. Returns false
// if no such section exists.
func (o *ObjectFile) RemoveSection(name string) bool {
	idx := o.FindSection(name)
	if idx < 0 {
		return false
	}
	o.Sections = append(o.Sections[:idx], o.Sections[idx+1:]...)
	o.Header.SectionCount = uint32(len(o.Sections))

	removed := uint32(idx + 1) // section references are 1-based
	for i := range o.Symbols {
		switch {
		case o.Symbols[i].SectionIdx == removed:
			o.Symbols[i].SectionIdx = 0
		case o.Symbols[i].SectionIdx > removed:
			o.Symbols[i].SectionIdx--
		}
	}
	o.Relocations = utils.RemoveIf(o.Relocations, func(r Relocation) bool {
		return r.SectionIdx() == removed
	})
	for i := range o.Relocations {
		r := &o.Relocations[i]
		if sec := r.SectionIdx(); sec > removed {
			r.Offset = PackRelocOffset(sec-1, r.SectionOffset())
		}
	}
	o.Header.RelocCount = uint32(len(o.Relocations))
	return true
}

// AddCodeSection creates a CODE section from the concatenated byte
// encodings of instructions, 16-byte aligned, EXECUTABLE|INITIALIZED|
// ALLOC. Returns the section index.
func (o *ObjectFile) AddCodeSection(name string, instructions ...[]byte) int {
	var data []byte
	for _, ins := range instructions {
		data = append(data, ins...)
	}
	return o.AddSection(Section{
		Type:    SectionCode,
		Flags:   SectionFlagExecutable | SectionFlagInitialized | SectionFlagAlloc,
		Size:    uint64(len(data)),
		Align:   16,
		NameIdx: o.AddString(name),
		Data:    data,
	})
}

// AddDataSection creates an initialized data section, 8-byte aligned.
// readOnly selects RODATA over writable DATA.
func (o *ObjectFile) AddDataSection(name string, data []byte, readOnly bool) int {
	typ := SectionData
	flags := SectionFlagWritable | SectionFlagInitialized | SectionFlagAlloc
	if readOnly {
		typ = SectionROData
		flags = SectionFlagInitialized | SectionFlagAlloc
	}
	return o.AddSection(Section{
		Type:    typ,
		Flags:   flags,
		Size:    uint64(len(data)),
		Align:   8,
		NameIdx: o.AddString(name),
		Data:    append([]byte(nil), data...),
	})
}

// AddBssSection creates an uninitialized data section carrying a size
// but no bytes, 8-byte aligned.
func (o *ObjectFile) AddBssSection(name string, size uint64) int {
	return o.AddSection(Section{
		Type:    SectionBSS,
		Flags:   SectionFlagWritable | SectionFlagAlloc,
		Size:    size,
		Align:   8,
		NameIdx: o.AddString(name),
	})
}

// updateOffsets recomputes the file layout: the section table follows
// the header, then the symbol table, the relocation table, the string
// table, and finally each section's payload rounded up to its own
// alignment. Header counts and offsets are refreshed to match.
func (o *ObjectFile) updateOffsets() {
	h := &o.Header
	h.SectionCount = uint32(len(o.Sections))
	h.SymbolCount = uint32(len(o.Symbols))
	h.RelocCount = uint32(len(o.Relocations))

	off := uint64(HeaderSize)
	h.SectionOff = 0
	if len(o.Sections) > 0 {
		h.SectionOff = off
	}
	off += uint64(len(o.Sections)) * SectionEntrySize
	h.SymbolOff = 0
	if len(o.Symbols) > 0 {
		h.SymbolOff = off
	}
	off += uint64(len(o.Symbols)) * SymbolEntrySize
	h.RelocOff = 0
	if len(o.Relocations) > 0 {
		h.RelocOff = off
	}
	off += uint64(len(o.Relocations)) * RelocationEntrySize
	h.StringOff = off
	off += o.Strings.Size()

	for i := range o.Sections {
		sec := &o.Sections[i]
		if sec.Type == SectionBSS {
			sec.Offset = 0
			continue
		}
		sec.Size = uint64(len(sec.Data))
		if sec.Size == 0 {
			sec.Offset = 0
			continue
		}
		off = utils.AlignTo(off, sec.Align)
		sec.Offset = off
		off += sec.Size
	}
}

// Encode recomputes the layout and serializes the object into one
// contiguous little-endian buffer. Non-BSS section sizes are taken
// from the payload length; only BSS sections keep a caller-set Size.
func (o *ObjectFile) Encode() []byte {
	o.updateOffsets()

	total := o.Header.StringOff + o.Strings.Size()
	for i := range o.Sections {
		sec := &o.Sections[i]
		if end := sec.Offset + sec.Size; sec.Offset != 0 && end > total {
			total = end
		}
	}

	buf := make([]byte, total)
	o.Header.encode(buf)
	for i := range o.Sections {
		o.Sections[i].encode(buf[o.Header.SectionOff+uint64(i)*SectionEntrySize:])
	}
	for i := range o.Symbols {
		o.Symbols[i].encode(buf[o.Header.SymbolOff+uint64(i)*SymbolEntrySize:])
	}
	for i := range o.Relocations {
		o.Relocations[i].encode(buf[o.Header.RelocOff+uint64(i)*RelocationEntrySize:])
	}
	copy(buf[o.Header.StringOff:], o.Strings.Bytes())
	for i := range o.Sections {
		sec := &o.Sections[i]
		if sec.Offset != 0 {
			copy(buf[sec.Offset:], sec.Data)
		}
	}
	return buf
}

// ParseObject decodes a COIL object from data. On any malformed input
// it returns a nil object and an error; it never returns a partially
// populated object.
func ParseObject(data []byte) (*ObjectFile, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d",
			ErrTruncated, len(data), HeaderSize)
	}
	h := decodeHeader(data)
	if err := h.Validate(); err != nil {
		return nil, err
	}

	size := uint64(len(data))
	checkTable := func(name string, off uint64, count uint32, entSize uint64) error {
		if count == 0 {
			return nil
		}
		need := uint64(count) * entSize
		if off >= size || need > size-off {
			return fmt.Errorf("%w: %s table at %#x (%d bytes) outside %d-byte object",
				ErrBounds, name, off, need, size)
		}
		return nil
	}
	if err := checkTable("section", h.SectionOff, h.SectionCount, SectionEntrySize); err != nil {
		return nil, err
	}
	if err := checkTable("symbol", h.SymbolOff, h.SymbolCount, SymbolEntrySize); err != nil {
		return nil, err
	}
	if err := checkTable("relocation", h.RelocOff, h.RelocCount, RelocationEntrySize); err != nil {
		return nil, err
	}
	if h.StringOff >= size {
		return nil, fmt.Errorf("%w: string table offset %#x outside %d-byte object",
			ErrBounds, h.StringOff, size)
	}

	o := &ObjectFile{Header: h}
	for i := uint32(0); i < h.SectionCount; i++ {
		o.Sections = append(o.Sections,
			decodeSection(data[h.SectionOff+uint64(i)*SectionEntrySize:]))
	}
	for i := uint32(0); i < h.SymbolCount; i++ {
		o.Symbols = append(o.Symbols,
			decodeSymbol(data[h.SymbolOff+uint64(i)*SymbolEntrySize:]))
	}
	for i := uint32(0); i < h.RelocCount; i++ {
		o.Relocations = append(o.Relocations,
			decodeRelocation(data[h.RelocOff+uint64(i)*RelocationEntrySize:]))
	}

	// The string table runs from StringOff to the nearest greater table
	// or payload offset, or to the end of the buffer if none qualify.
	strEnd := size
	bound := func(off uint64) {
		if off > h.StringOff && off < strEnd {
			strEnd = off
		}
	}
	bound(h.SectionOff)
	bound(h.SymbolOff)
	bound(h.RelocOff)
	for i := range o.Sections {
		if o.Sections[i].Offset != 0 {
			bound(o.Sections[i].Offset)
		}
	}
	// Alignment padding before the first payload shows up as extra NUL
	// bytes past the table's final terminator; trim back down to that
	// terminator so the rebuilt table matches what Add produced.
	raw := data[h.StringOff:strEnd]
	last := len(raw)
	for last > 0 && raw[last-1] == 0 {
		last--
	}
	if last < len(raw) {
		raw = raw[:last+1]
	}
	o.Strings = stringTableFromBytes(append([]byte(nil), raw...))

	for i := range o.Sections {
		sec := &o.Sections[i]
		if sec.Type == SectionBSS || sec.Size == 0 {
			continue
		}
		if sec.Offset >= size || sec.Size > size-sec.Offset {
			return nil, fmt.Errorf("%w: section %d payload at %#x (%d bytes) outside %d-byte object",
				ErrBounds, i, sec.Offset, sec.Size, size)
		}
		sec.Data = append([]byte(nil), data[sec.Offset:sec.Offset+sec.Size]...)
	}
	return o, nil
}

// DetectObject reports whether contents starts with the COIL magic.
func DetectObject(contents []byte) bool {
	return len(contents) >= 4 &&
		contents[0] == Magic[0] && contents[1] == Magic[1] &&
		contents[2] == Magic[2] && contents[3] == Magic[3]
}

// LoadFromFile reads and parses one object from path.
func LoadFromFile(path string) (*ObjectFile, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := ParseObject(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// SaveToFile encodes the object and writes it to path. A failed write
// leaves whatever bytes were flushed and reports the error.
func (o *ObjectFile) SaveToFile(path string) error {
	return os.WriteFile(path, o.Encode(), 0o644)
}
