package linker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
)

func writeTestObject(t *testing.T, dir, name string, build func(*coil.ObjectFile)) string {
	t.Helper()
	o := coil.NewObjectFile()
	o.SetTarget(coil.PUCPU, coil.ArchX8664, coil.Mode64)
	build(o)
	path := filepath.Join(dir, name)
	if err := o.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile(%s): %v", path, err)
	}
	return path
}

func TestLinkFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTestObject(t, dir, "a.coil", func(o *coil.ObjectFile) {
		o.AddCodeSection(".text", make([]byte, 16))
		addGlobal(o, "main", 1, 0, 16)
	})
	b := writeTestObject(t, dir, "b.coil", func(o *coil.ObjectFile) {
		o.AddCodeSection(".text", make([]byte, 8))
	})

	out := filepath.Join(dir, "out.coil")
	opts := DefaultOptions()
	opts.CreateExecutable = true
	opts.EntrySymbol = "main"
	res, err := LinkFiles([]string{a, b}, out, opts)
	if err != nil {
		t.Fatalf("LinkFiles: %v", err)
	}
	if res.Inputs != 2 {
		t.Errorf("linked %d inputs, want 2", res.Inputs)
	}

	got, err := coil.LoadFromFile(out)
	if err != nil {
		t.Fatalf("LoadFromFile(output): %v", err)
	}
	if got.Header.Flags&coil.ObjectFlagExecutable == 0 {
		t.Error("saved output not flagged executable")
	}
	if idx := got.FindSection(".text"); idx < 0 || got.Sections[idx].Size != 24 {
		t.Errorf("saved .text wrong: idx=%d", idx)
	}
}

func TestLinkFilesSearchDirs(t *testing.T) {
	dir := t.TempDir()
	writeTestObject(t, dir, "lib.coil", func(o *coil.ObjectFile) {
		o.AddDataSection(".data", []byte{1, 2, 3, 4}, false)
	})

	opts := MergeOptions()
	opts.SearchDirs = []string{dir}
	out := filepath.Join(t.TempDir(), "out.coil")
	if _, err := LinkFiles([]string{"lib.coil"}, out, opts); err != nil {
		t.Fatalf("LinkFiles via search dir: %v", err)
	}
}

func TestLinkFilesMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.coil")
	if _, err := LinkFiles([]string{"no-such-file.coil"}, out, MergeOptions()); err == nil {
		t.Fatal("LinkFiles accepted a missing input")
	}
}

func TestLinkFilesRejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-an-object")
	if err := os.WriteFile(path, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.coil")
	if _, err := LinkFiles([]string{path}, out, MergeOptions()); err == nil {
		t.Fatal("LinkFiles accepted a non-COIL file")
	}
}

func TestMergeObjectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTestObject(t, dir, "a.coil", func(o *coil.ObjectFile) {
		o.AddCodeSection(".text", make([]byte, 16))
		addGlobal(o, "main", 1, 0, 16)
		helper := o.AddSymbol(coil.Symbol{
			NameIdx: o.AddString("helper"),
			Binding: coil.BindGlobal,
		})
		o.AddRelocation(coil.Relocation{
			Offset:    coil.PackRelocOffset(1, 4),
			SymbolIdx: uint32(helper),
			Type:      coil.RelocPCRel32,
		})
	})

	out := filepath.Join(dir, "merged.coil")
	res, err := MergeObjectFiles([]string{a}, out)
	if err != nil {
		t.Fatalf("MergeObjectFiles: %v", err)
	}
	// Undefined helper survives as a placeholder and its relocation is
	// kept for a later link.
	if res.RetainedRelocations != 1 {
		t.Errorf("retained %d relocations, want 1", res.RetainedRelocations)
	}
	got, err := coil.LoadFromFile(out)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got.Header.Flags&coil.ObjectFlagExecutable != 0 {
		t.Error("merged output flagged executable")
	}
	if got.FindSymbol("helper") < 0 {
		t.Error("helper placeholder missing from merged output")
	}
}
