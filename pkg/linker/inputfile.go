package linker

import "github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"

// sectionRef locates one input section inside a merged section: the
// section it merged into and its position in the contributor list.
type sectionRef struct {
	merged *MergedSection
	pos    int
}

// inputFile wraps one borrowed input object together with the remap
// tables built for it during a link. String offsets and section
// indices are remapped by table; symbols are resolved by name instead.
type inputFile struct {
	obj *coil.ObjectFile

	// stringMap maps input string-table offsets to output offsets.
	stringMap map[uint32]uint32
	// sectionMap maps 1-based input section indices to merged slots.
	sectionMap map[uint32]sectionRef
	// stripped records 1-based section indices dropped by StripDebug.
	stripped map[uint32]bool
}

func newInputFile(obj *coil.ObjectFile) *inputFile {
	return &inputFile{
		obj:        obj,
		stringMap:  make(map[uint32]uint32),
		sectionMap: make(map[uint32]sectionRef),
		stripped:   make(map[uint32]bool),
	}
}
