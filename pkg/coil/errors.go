package coil

import "errors"

// Malformed-input errors reported by ParseObject and Header.Validate.
// All of them wrap into the error returned to the caller; a failed parse
// never yields a partially populated ObjectFile.
var (
	ErrBadMagic  = errors.New("coil: bad magic")
	ErrVersion   = errors.New("coil: incompatible version")
	ErrBadHeader = errors.New("coil: invalid header")
	ErrTruncated = errors.New("coil: truncated object")
	ErrBounds    = errors.New("coil: offset out of bounds")
)
