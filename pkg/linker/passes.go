package linker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
)

// candidate is one non-local symbol occurrence considered during
// resolution, with any registered overrides already applied.
type candidate struct {
	input int
	sym   coil.Symbol
}

// pendingReloc is a relocation that passed validation and waits for the
// output layout before it is applied or emitted.
type pendingReloc struct {
	ref     sectionRef
	off     uint32
	symName string
	typ     coil.RelocationType
	addend  int64
	apply   bool
}

// validateInputFiles requires at least one input and, unless configured
// otherwise, an identical target triple across all inputs.
func (l *Linker) validateInputFiles() error {
	if len(l.inputs) == 0 {
		return errors.New("no input files")
	}
	if l.opts.AllowMismatchedArch {
		return nil
	}
	first := &l.inputs[0].obj.Header
	for i, in := range l.inputs[1:] {
		h := &in.obj.Header
		if h.TargetPU != first.TargetPU || h.TargetArch != first.TargetArch ||
			h.TargetMode != first.TargetMode {
			return fmt.Errorf(
				"input %d target (%d,%d,%d) does not match first input (%d,%d,%d)",
				i+1, h.TargetPU, h.TargetArch, h.TargetMode,
				first.TargetPU, first.TargetArch, first.TargetMode)
		}
	}
	return nil
}

// mergeStringTables interns every section and symbol name into the
// output string table and records each input's offset remapping.
func (l *Linker) mergeStringTables() {
	for _, in := range l.inputs {
		for i := range in.obj.Sections {
			old := in.obj.Sections[i].NameIdx
			in.stringMap[old] = l.output.AddString(in.obj.GetString(old))
		}
		for i := range in.obj.Symbols {
			old := in.obj.Symbols[i].NameIdx
			in.stringMap[old] = l.output.AddString(in.obj.GetString(old))
		}
	}
}

// resolveSymbols groups all named non-local symbols by name and picks
// one winner per name: strong before weak before common (largest size),
// with undefined placeholders kept only when permitted.
func (l *Linker) resolveSymbols() error {
	groups := make(map[string][]candidate)
	var order []string
	for idx, in := range l.inputs {
		for i := range in.obj.Symbols {
			sym := in.obj.Symbols[i]
			name := in.obj.GetString(sym.NameIdx)
			if name == "" || sym.Binding == coil.BindLocal {
				continue
			}
			if b, ok := l.bindOverrides[name]; ok {
				sym.Binding = b
			}
			if v, ok := l.visOverrides[name]; ok {
				sym.Visibility = v
			}
			if _, ok := groups[name]; !ok {
				order = append(order, name)
			}
			groups[name] = append(groups[name], candidate{input: idx, sym: sym})
		}
	}

	for _, name := range order {
		cands := groups[name]
		var strong, weak, common []candidate
		for _, c := range cands {
			switch {
			case c.sym.Type == coil.SymbolCommon:
				common = append(common, c)
			case c.sym.SectionIdx == 0:
				// undefined reference
			case c.sym.Binding == coil.BindGlobal:
				strong = append(strong, c)
			case c.sym.Binding == coil.BindWeak:
				weak = append(weak, c)
			}
		}

		var winner candidate
		switch {
		case len(strong) > 0:
			if len(strong) > 1 && l.opts.ConflictPolicy == ConflictError {
				return fmt.Errorf("multiple strong definitions of symbol %q", name)
			}
			winner = strong[0]
		case len(weak) > 0:
			winner = weak[0]
		case len(common) > 0:
			winner = common[0]
			for _, c := range common[1:] {
				if c.sym.Size > winner.sym.Size {
					winner = c
				}
			}
		default:
			if l.opts.ResolveAllSymbols && l.opts.CreateExecutable {
				return fmt.Errorf("undefined symbol: %s", name)
			}
			winner = cands[0]
			winner.sym.SectionIdx = 0
			winner.sym.Size = 0
			winner.input = -1
		}

		sym := winner.sym
		localSec := sym.SectionIdx
		if winner.input >= 0 {
			sym.NameIdx = l.inputs[winner.input].stringMap[sym.NameIdx]
		} else {
			sym.NameIdx = l.output.AddString(name)
		}
		l.resolved[name] = &Symbol{
			Name:     name,
			Sym:      sym,
			input:    winner.input,
			localSec: localSec,
		}
		l.resolvSeq = append(l.resolvSeq, name)
	}
	return nil
}

func strippable(name string) bool {
	return strings.HasPrefix(name, ".debug") || strings.HasPrefix(name, ".comment")
}

// mergeSections groups input sections by name, enforcing identical
// types and an identical WRITABLE|EXECUTABLE pattern per group so code
// and writable data never silently share a name.
func (l *Linker) mergeSections() error {
	const exclusive = coil.SectionFlagWritable | coil.SectionFlagExecutable

	for idx, in := range l.inputs {
		for i := range in.obj.Sections {
			sec := &in.obj.Sections[i]
			name := in.obj.GetString(sec.NameIdx)
			local := uint32(i + 1)
			if l.opts.StripDebug && strippable(name) {
				in.stripped[local] = true
				continue
			}

			ms, ok := l.merged[name]
			if !ok {
				ms = newMergedSection(name, sec)
				l.merged[name] = ms
				l.mergedSeq = append(l.mergedSeq, ms)
			} else {
				if ms.Type != sec.Type {
					return fmt.Errorf(
						"incompatible types for section %q: %s vs %s",
						name, ms.Type, sec.Type)
				}
				if ms.Flags&exclusive != sec.Flags&exclusive {
					return fmt.Errorf(
						"incompatible flags for section %q: %#x vs %#x",
						name, uint32(ms.Flags&exclusive), uint32(sec.Flags&exclusive))
				}
			}
			pos := ms.add(idx, local, sec)
			in.sectionMap[local] = sectionRef{merged: ms, pos: pos}
		}
	}
	return nil
}

// processRelocations validates every input relocation, maps it into the
// merged layout, and decides whether it will be applied directly or
// retained in the output.
func (l *Linker) processRelocations() error {
	for idx, in := range l.inputs {
		for i := range in.obj.Relocations {
			rel := &in.obj.Relocations[i]
			if int(rel.SymbolIdx) >= len(in.obj.Symbols) {
				return fmt.Errorf(
					"input %d relocation %d references symbol %d of %d",
					idx, i, rel.SymbolIdx, len(in.obj.Symbols))
			}
			symName := in.obj.SymbolName(int(rel.SymbolIdx))
			target, ok := l.resolved[symName]
			if !ok {
				return fmt.Errorf("symbol not found: %q (input %d relocation %d)",
					symName, idx, i)
			}

			local := rel.SectionIdx()
			if in.stripped[local] {
				continue
			}
			ref, ok := in.sectionMap[local]
			if !ok {
				return fmt.Errorf(
					"input %d relocation %d references unmapped section %d",
					idx, i, local)
			}

			// GOT and PLT relocations would need synthetic sections this
			// linker does not build, so they are always retained.
			apply := l.opts.CreateExecutable && target.Defined() &&
				rel.Type != coil.RelocGOTRel && rel.Type != coil.RelocPLTRel

			l.pending = append(l.pending, pendingReloc{
				ref:     ref,
				off:     rel.SectionOffset(),
				symName: symName,
				typ:     rel.Type,
				addend:  rel.Addend,
				apply:   apply,
			})
		}
	}
	return nil
}
