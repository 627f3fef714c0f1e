package utils

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Fatal reports an unrecoverable driver error and exits. Library code
// returns errors instead; only the command-line driver uses this.
func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "coil-ld: \033[0;1;31mfatal\033[0m: %v\n", v)
	os.Exit(1)
}

func MustNo(err error) {
	if err != nil {
		Fatal(err)
	}
}

// AlignTo rounds val up to the next multiple of align. align must be a
// power of two; align == 0 is treated as 1.
func AlignTo(val, align uint64) uint64 {
	if align == 0 {
		return val
	}
	return (val + align - 1) &^ (align - 1)
}

func IsPowerOfTwo(val uint64) bool {
	return val != 0 && val&(val-1) == 0
}

func RemoveIf[T any](elems []T, condition func(T) bool) []T {
	out := elems[:0]
	for _, elem := range elems {
		if !condition(elem) {
			out = append(out, elem)
		}
	}
	return out
}

func Read[T uint16 | uint32 | uint64](data []byte) T {
	var v T
	switch any(v).(type) {
	case uint16:
		v = T(binary.LittleEndian.Uint16(data))
	case uint32:
		v = T(binary.LittleEndian.Uint32(data))
	case uint64:
		v = T(binary.LittleEndian.Uint64(data))
	}
	return v
}

func Write[T uint16 | uint32 | uint64](data []byte, v T) {
	switch val := any(v).(type) {
	case uint16:
		binary.LittleEndian.PutUint16(data, val)
	case uint32:
		binary.LittleEndian.PutUint32(data, val)
	case uint64:
		binary.LittleEndian.PutUint64(data, val)
	}
}
