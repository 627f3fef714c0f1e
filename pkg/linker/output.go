package linker

import (
	"fmt"
	"math"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
)

// generateOutput lays out the merged sections, emits sections, symbols
// and relocations into the output object, applies eligible relocations
// and resolves the entry point.
func (l *Linker) generateOutput() (*LinkResult, error) {
	out := l.output
	first := l.inputs[0].obj
	out.SetTarget(first.Header.TargetPU, first.Header.TargetArch, first.Header.TargetMode)
	out.Header.Endianness = first.Header.Endianness
	if l.opts.CreateExecutable {
		out.Header.Flags |= coil.ObjectFlagExecutable
	} else {
		out.Header.Flags |= coil.ObjectFlagShared
	}

	for _, ms := range l.mergedSeq {
		ms.assignOffsets()
		ms.build(l.inputs)
		if addr, ok := l.loadAddrs[ms.Name]; ok {
			ms.Addr = addr
		}
		idx := out.AddSection(coil.Section{
			Type:    ms.Type,
			Flags:   ms.Flags,
			Size:    ms.Size,
			Addr:    ms.Addr,
			Align:   ms.Align,
			NameIdx: out.AddString(ms.Name),
			Data:    ms.data,
		})
		ms.outIdx = uint32(idx + 1)
	}

	for _, name := range l.resolvSeq {
		r := l.resolved[name]
		sym := r.Sym
		r.finalValue = sym.Value
		if r.input >= 0 && r.localSec != 0 {
			if ref, ok := l.inputs[r.input].sectionMap[r.localSec]; ok {
				ms := ref.merged
				r.merged = ms
				r.finalValue = sym.Value + ms.sources[ref.pos].offset
				sym.SectionIdx = ms.outIdx
				sym.Value = r.finalValue
			} else {
				// Defining section was stripped from the output.
				sym.SectionIdx = 0
			}
		}
		r.outIdx = uint32(out.AddSymbol(sym))
	}

	applied, retained := 0, 0
	for i := range l.pending {
		p := &l.pending[i]
		ms := p.ref.merged
		place := ms.sources[p.ref.pos].offset + uint64(p.off)
		if place > math.MaxUint32 {
			return nil, fmt.Errorf(
				"section %q: relocation offset %#x exceeds the format's 4 GiB limit",
				ms.Name, place)
		}
		target := l.resolved[p.symName]

		if p.apply {
			if err := applyRelocation(ms, place, target, p.typ, p.addend); err != nil {
				return nil, err
			}
			applied++
			if !l.opts.KeepRelocations {
				continue
			}
		}

		out.AddRelocation(coil.Relocation{
			Offset:    coil.PackRelocOffset(ms.outIdx, uint32(place)),
			SymbolIdx: target.outIdx,
			Type:      p.typ,
			Addend:    p.addend,
		})
		retained++
	}

	if l.opts.EntrySymbol != "" {
		r, ok := l.resolved[l.opts.EntrySymbol]
		if !ok || !r.Defined() {
			return nil, fmt.Errorf(
				"entry point symbol %q not found or undefined", l.opts.EntrySymbol)
		}
		entry := r.finalValue
		if r.merged != nil {
			entry += r.merged.Addr
		}
		out.Header.EntryPoint = entry
	}

	return &LinkResult{
		Output:              out,
		Inputs:              len(l.inputs),
		MergedSections:      len(l.mergedSeq),
		ResolvedSymbols:     len(l.resolvSeq),
		AppliedRelocations:  applied,
		RetainedRelocations: retained,
	}, nil
}
