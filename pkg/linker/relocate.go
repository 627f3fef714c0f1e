package linker

import (
	"fmt"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/utils"
)

// symbolAddr is the target's final address: its merged section's load
// address plus its placement-adjusted value.
func symbolAddr(sym *Symbol) uint64 {
	if sym.merged != nil {
		return sym.merged.Addr + sym.finalValue
	}
	return sym.finalValue
}

// applyRelocation patches the merged section bytes at place with the
// value the relocation describes. S is the symbol address, A the
// addend, P the place being patched.
func applyRelocation(ms *MergedSection, place uint64, target *Symbol,
	typ coil.RelocationType, addend int64) error {

	if ms.data == nil {
		return fmt.Errorf("section %q: cannot apply relocation in a section without contents",
			ms.Name)
	}
	width := uint64(8)
	if typ == coil.RelocAbs32 || typ == coil.RelocPCRel32 {
		width = 4
	}
	if place+width > uint64(len(ms.data)) {
		return fmt.Errorf("section %q: relocation at %#x overruns section of %d bytes",
			ms.Name, place, len(ms.data))
	}

	s := int64(symbolAddr(target))
	p := int64(ms.Addr + place)
	loc := ms.data[place:]

	switch typ {
	case coil.RelocAbs32:
		utils.Write[uint32](loc, uint32(s+addend))
	case coil.RelocAbs64:
		utils.Write[uint64](loc, uint64(s+addend))
	case coil.RelocPCRel32:
		utils.Write[uint32](loc, uint32(s+addend-p))
	case coil.RelocPCRel64:
		utils.Write[uint64](loc, uint64(s+addend-p))
	default:
		return fmt.Errorf("cannot directly apply %s relocation", typ)
	}
	return nil
}
