package linker

import (
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/utils"
)

// contributor is one input section's slot inside a merged section.
type contributor struct {
	input  int    // index into Linker.inputs
	secIdx uint32 // 1-based section index within that input
	size   uint64
	align  uint64
	offset uint64 // placement inside the merged section, set by assignOffsets
}

// MergedSection accumulates all same-named input sections. Contributors
// keep input order; flags are the OR of all contributors and alignment
// is the max.
type MergedSection struct {
	Name  string
	Type  coil.SectionType
	Flags coil.SectionFlag
	Align uint64
	Size  uint64

	// Addr is the configured load address, 0 when none was set.
	Addr uint64

	sources []contributor
	outIdx  uint32 // 1-based index in the output object, set by generateOutput
	data    []byte
}

func newMergedSection(name string, sec *coil.Section) *MergedSection {
	align := sec.Align
	if align == 0 {
		align = 1
	}
	return &MergedSection{
		Name:  name,
		Type:  sec.Type,
		Flags: sec.Flags,
		Align: align,
	}
}

// add appends one contributor and returns its position.
func (m *MergedSection) add(input int, secIdx uint32, sec *coil.Section) int {
	align := sec.Align
	if align == 0 {
		align = 1
	}
	m.Flags |= sec.Flags
	if align > m.Align {
		m.Align = align
	}
	m.sources = append(m.sources, contributor{
		input:  input,
		secIdx: secIdx,
		size:   sec.Size,
		align:  align,
	})
	return len(m.sources) - 1
}

// assignOffsets lays the contributors out in order, each one rounded up
// to its own alignment, and records the total size.
func (m *MergedSection) assignOffsets() {
	offset := uint64(0)
	for i := range m.sources {
		src := &m.sources[i]
		offset = utils.AlignTo(offset, src.align)
		src.offset = offset
		offset += src.size
	}
	m.Size = offset
}

// build fills the merged payload from the contributors' bytes. BSS
// sections carry no payload.
func (m *MergedSection) build(inputs []*inputFile) {
	if m.Type == coil.SectionBSS {
		return
	}
	m.data = make([]byte, m.Size)
	for i := range m.sources {
		src := &m.sources[i]
		sec := &inputs[src.input].obj.Sections[src.secIdx-1]
		copy(m.data[src.offset:], sec.Data)
	}
}
