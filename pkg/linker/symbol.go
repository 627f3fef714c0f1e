package linker

import "github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"

// Symbol is one resolved entry in the output symbol table. Sym carries
// the winning definition with its name index already rewritten to the
// output string table; input and localSec remember where it came from
// so generateOutput can remap it into the merged layout.
type Symbol struct {
	Name string
	Sym  coil.Symbol

	input    int    // defining input, -1 for an undefined placeholder
	localSec uint32 // 1-based section index within that input, 0 if none

	// Set by generateOutput.
	outIdx     uint32 // index in the output symbol table
	finalValue uint64 // value after contributor placement adjustment
	merged     *MergedSection
}

// Defined reports whether the symbol carries a definition (a section or
// a COMMON allocation), as opposed to an undefined placeholder.
func (s *Symbol) Defined() bool {
	return s.Sym.SectionIdx != 0 || s.Sym.Type == coil.SymbolCommon
}
