// Package linker merges COIL object files: it resolves symbols across
// inputs, concatenates same-named sections with correct alignment,
// remaps relocations, and emits one output object.
package linker

import (
	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
)

// Linker holds the state of one link invocation. It borrows the input
// objects read-only for the duration of Link and owns only its remap
// tables and the output. A Linker is not safe for concurrent use; run
// concurrent links on separate instances or call Reset between uses.
type Linker struct {
	opts Options

	inputs    []*inputFile
	merged    map[string]*MergedSection
	mergedSeq []*MergedSection
	resolved  map[string]*Symbol
	resolvSeq []string
	pending   []pendingReloc

	bindOverrides map[string]coil.SymbolBinding
	visOverrides  map[string]coil.SymbolVisibility
	loadAddrs     map[string]uint64

	output *coil.ObjectFile
}

// LinkResult wraps a successful link's output and some counters.
type LinkResult struct {
	Output *coil.ObjectFile

	Inputs              int
	MergedSections      int
	ResolvedSymbols     int
	AppliedRelocations  int
	RetainedRelocations int
}

func NewLinker(opts Options) *Linker {
	l := &Linker{opts: opts}
	l.Reset()
	return l
}

// Reset clears all per-invocation state so the Linker can be reused.
// Registered overrides survive a reset.
func (l *Linker) Reset() {
	l.inputs = nil
	l.merged = make(map[string]*MergedSection)
	l.mergedSeq = nil
	l.resolved = make(map[string]*Symbol)
	l.resolvSeq = nil
	l.pending = nil
	l.output = nil
	if l.bindOverrides == nil {
		l.bindOverrides = make(map[string]coil.SymbolBinding)
		l.visOverrides = make(map[string]coil.SymbolVisibility)
		l.loadAddrs = make(map[string]uint64)
	}
}

// OverrideBinding forces every candidate of the named symbol to the
// given binding before resolution.
func (l *Linker) OverrideBinding(name string, b coil.SymbolBinding) {
	l.bindOverrides[name] = b
}

// OverrideVisibility forces every candidate of the named symbol to the
// given visibility before resolution.
func (l *Linker) OverrideVisibility(name string, v coil.SymbolVisibility) {
	l.visOverrides[name] = v
}

// SetSectionLoadAddress assigns a load address to the named merged
// section in the output.
func (l *Linker) SetSectionLoadAddress(name string, addr uint64) {
	l.loadAddrs[name] = addr
}

// Link runs the pipeline over the given objects and produces one
// output object. Any stage failure aborts the link; no partial output
// is ever returned.
func (l *Linker) Link(objs ...*coil.ObjectFile) (*LinkResult, error) {
	l.Reset()
	for _, obj := range objs {
		l.inputs = append(l.inputs, newInputFile(obj))
	}
	l.output = coil.NewObjectFile()

	if err := l.validateInputFiles(); err != nil {
		return nil, err
	}
	l.mergeStringTables()
	if err := l.resolveSymbols(); err != nil {
		return nil, err
	}
	if err := l.mergeSections(); err != nil {
		return nil, err
	}
	if err := l.processRelocations(); err != nil {
		return nil, err
	}
	res, err := l.generateOutput()
	if err != nil {
		return nil, err
	}
	return res, nil
}
