package coil

import (
	"bufio"
	"fmt"
	"io"
)

func endianName(b uint8) string {
	switch b {
	case EndianLittle:
		return "little endian"
	case EndianBig:
		return "big endian"
	default:
		return "unknown"
	}
}

// Dump writes a human-readable listing of the object to w.
func (o *ObjectFile) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	h := &o.Header
	major, minor, patch := VersionParts(h.Version)
	fmt.Fprintf(bw, "COIL object v%d.%d.%d, %s\n", major, minor, patch, endianName(h.Endianness))
	fmt.Fprintf(bw, "  target: pu=%d arch=%d mode=%d\n", h.TargetPU, h.TargetArch, h.TargetMode)
	fmt.Fprintf(bw, "  flags: %#x", uint32(h.Flags))
	if h.Flags&ObjectFlagExecutable != 0 {
		fmt.Fprintf(bw, " EXEC entry=%#x", h.EntryPoint)
	}
	if h.Flags&ObjectFlagShared != 0 {
		fmt.Fprint(bw, " SHARED")
	}
	if h.Flags&ObjectFlagRelocatable != 0 {
		fmt.Fprint(bw, " RELOC")
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "sections (%d):\n", len(o.Sections))
	for i := range o.Sections {
		sec := &o.Sections[i]
		fmt.Fprintf(bw, "  [%2d] %-16s %-8s size=%-8d align=%-4d flags=%#x off=%#x\n",
			i, o.SectionName(i), sec.Type, sec.Size, sec.Align, uint32(sec.Flags), sec.Offset)
	}
	fmt.Fprintf(bw, "symbols (%d):\n", len(o.Symbols))
	for i := range o.Symbols {
		sym := &o.Symbols[i]
		fmt.Fprintf(bw, "  [%2d] %-24s %-6s sec=%-3d value=%#-10x size=%d\n",
			i, o.SymbolName(i), sym.Binding, sym.SectionIdx, sym.Value, sym.Size)
	}
	fmt.Fprintf(bw, "relocations (%d):\n", len(o.Relocations))
	for i := range o.Relocations {
		rel := &o.Relocations[i]
		fmt.Fprintf(bw, "  [%2d] %-8s sec=%d+%#x sym=%d addend=%d\n",
			i, rel.Type, rel.SectionIdx(), rel.SectionOffset(), rel.SymbolIdx, rel.Addend)
	}
	return bw.Flush()
}
