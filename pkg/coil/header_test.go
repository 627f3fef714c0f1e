package coil

import (
	"errors"
	"testing"
)

func TestHeaderValidate(t *testing.T) {
	good := NewHeader()
	good.StringOff = HeaderSize
	if err := good.Validate(); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Header)
		want   error
	}{
		{"bad magic", func(h *Header) { h.Magic[0] = 'X' }, ErrBadMagic},
		{"wrong major", func(h *Header) { h.Version = MakeVersion(VersionMajor+1, 0, 0) }, ErrVersion},
		{"sections without offset", func(h *Header) { h.SectionCount = 2; h.SectionOff = 0 }, ErrBadHeader},
		{"symbols without offset", func(h *Header) { h.SymbolCount = 1; h.SymbolOff = 0 }, ErrBadHeader},
		{"relocs without offset", func(h *Header) { h.RelocCount = 1; h.RelocOff = 0 }, ErrBadHeader},
		{"missing string table", func(h *Header) { h.StringOff = 0 }, ErrBadHeader},
		{"bad endianness", func(h *Header) { h.Endianness = 7 }, ErrBadHeader},
	}
	for _, tt := range tests {
		h := good
		tt.mutate(&h)
		err := h.Validate()
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestHeaderEncodeDecode(t *testing.T) {
	h := NewHeader()
	h.Flags = ObjectFlagExecutable | ObjectFlagPIC
	h.TargetPU = PUCPU
	h.TargetArch = ArchRISCV64
	h.TargetMode = Mode64
	h.EntryPoint = 0x401000
	h.SectionCount = 3
	h.SymbolCount = 5
	h.RelocCount = 2
	h.SectionOff = HeaderSize
	h.SymbolOff = HeaderSize + 3*SectionEntrySize
	h.RelocOff = h.SymbolOff + 5*SymbolEntrySize
	h.StringOff = h.RelocOff + 2*RelocationEntrySize
	h.Endianness = EndianBig

	buf := make([]byte, HeaderSize)
	h.encode(buf)
	if got := decodeHeader(buf); got != h {
		t.Errorf("decode(encode(h)) = %+v, want %+v", got, h)
	}
}

func TestVersionParts(t *testing.T) {
	v := MakeVersion(2, 7, 19)
	major, minor, patch := VersionParts(v)
	if major != 2 || minor != 7 || patch != 19 {
		t.Errorf("VersionParts(%#x) = %d.%d.%d, want 2.7.19", v, major, minor, patch)
	}
}
