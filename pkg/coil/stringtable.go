package coil

import "bytes"

// StringTable interns NUL-terminated strings and hands out stable byte
// offsets. Offset 0 is always the empty string.
type StringTable struct {
	buf    []byte
	byName map[string]uint32
}

func NewStringTable() *StringTable {
	return &StringTable{
		buf:    []byte{0},
		byName: map[string]uint32{"": 0},
	}
}

// Add interns s and returns its offset. Calling Add twice with the same
// string returns the same offset both times.
func (t *StringTable) Add(s string) uint32 {
	if off, ok := t.byName[s]; ok {
		return off
	}
	off := uint32(len(t.buf))
	t.buf = append(t.buf, s...)
	t.buf = append(t.buf, 0)
	t.byName[s] = off
	return off
}

// Get returns the string starting at off. Out-of-range offsets yield
// the empty string.
func (t *StringTable) Get(off uint32) string {
	if int(off) >= len(t.buf) {
		return ""
	}
	end := bytes.IndexByte(t.buf[off:], 0)
	if end < 0 {
		return string(t.buf[off:])
	}
	return string(t.buf[off : int(off)+end])
}

// Lookup returns the offset of a previously interned string.
func (t *StringTable) Lookup(s string) (uint32, bool) {
	off, ok := t.byName[s]
	return off, ok
}

// Size returns the byte length of the table.
func (t *StringTable) Size() uint64 {
	return uint64(len(t.buf))
}

// Bytes returns the raw table contents.
func (t *StringTable) Bytes() []byte {
	return t.buf
}

// stringTableFromBytes rebuilds the intern map by scanning for runs
// between NUL bytes; position 0 always counts as a run start.
func stringTableFromBytes(raw []byte) *StringTable {
	t := &StringTable{
		buf:    raw,
		byName: make(map[string]uint32),
	}
	if len(raw) == 0 {
		t.buf = []byte{0}
	}
	start := 0
	for i, b := range t.buf {
		if b == 0 {
			s := string(t.buf[start:i])
			if _, ok := t.byName[s]; !ok {
				t.byName[s] = uint32(start)
			}
			start = i + 1
		}
	}
	if _, ok := t.byName[""]; !ok {
		t.byName[""] = 0
	}
	return t
}
