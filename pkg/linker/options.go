package linker

// ConflictPolicy selects how multiple strong definitions of the same
// symbol are handled.
type ConflictPolicy int

const (
	// ConflictError fails the link when more than one strong definition
	// of a symbol exists.
	ConflictError ConflictPolicy = iota
	// ConflictTakeFirst keeps the definition from the earliest input.
	ConflictTakeFirst
	// ConflictTakeStrongest keeps the first strong definition. With the
	// binding model here it behaves like ConflictTakeFirst.
	ConflictTakeStrongest
)

// Options configures one link invocation.
type Options struct {
	// CreateExecutable marks the output executable and enables direct
	// relocation application; otherwise the output is a shared object.
	CreateExecutable bool
	// ResolveAllSymbols makes unresolved references fatal when building
	// an executable.
	ResolveAllSymbols bool
	// KeepRelocations retains relocations in the output even when they
	// were applied.
	KeepRelocations bool
	// StripDebug drops sections whose names begin with ".debug" or
	// ".comment".
	StripDebug bool
	// AllowMismatchedArch skips the target-triple equality check across
	// inputs.
	AllowMismatchedArch bool

	ConflictPolicy ConflictPolicy

	// EntrySymbol, when non-empty, names the symbol whose resolved
	// address becomes the output entry point.
	EntrySymbol string

	// SearchDirs are tried in order when LinkFiles cannot open a path
	// as given.
	SearchDirs []string
}

// DefaultOptions are the options used when none are given: a shared
// object with full symbol resolution.
func DefaultOptions() Options {
	return Options{ResolveAllSymbols: true}
}

// MergeOptions configure a pure object merge: non-executable, symbols
// not required resolved, relocations kept.
func MergeOptions() Options {
	return Options{KeepRelocations: true}
}
