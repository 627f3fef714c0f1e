package utils

import "testing"

func TestAlignTo(t *testing.T) {
	tests := []struct{ val, align, want uint64 }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 4, 4},
		{5, 1, 5},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := AlignTo(tt.val, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.val, tt.align, got, tt.want)
		}
	}
}

func TestRemoveIf(t *testing.T) {
	got := RemoveIf([]int{1, 2, 3, 4, 5}, func(v int) bool { return v%2 == 0 })
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("RemoveIf = %v, want [1 3 5]", got)
	}
}

func TestReadWrite(t *testing.T) {
	buf := make([]byte, 8)
	Write[uint32](buf, 0xdeadbeef)
	if got := Read[uint32](buf); got != 0xdeadbeef {
		t.Errorf("Read[uint32] = %#x", got)
	}
	Write[uint64](buf, 0x0102030405060708)
	if got := Read[uint64](buf); got != 0x0102030405060708 {
		t.Errorf("Read[uint64] = %#x", got)
	}
	if buf[0] != 0x08 {
		t.Errorf("not little-endian: buf[0] = %#x", buf[0])
	}
}
