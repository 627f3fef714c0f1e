package coil

import "testing"

func TestStringTableIntern(t *testing.T) {
	st := NewStringTable()
	if off := st.Add(""); off != 0 {
		t.Errorf("Add(\"\") = %d, want 0", off)
	}

	a := st.Add("main")
	b := st.Add("main")
	if a != b {
		t.Errorf("Add(\"main\") twice: %d then %d", a, b)
	}
	if got := st.Get(a); got != "main" {
		t.Errorf("Get(%d) = %q, want \"main\"", a, got)
	}

	c := st.Add("helper")
	if c == a {
		t.Errorf("distinct strings share offset %d", c)
	}
	if got := st.Get(c); got != "helper" {
		t.Errorf("Get(%d) = %q, want \"helper\"", c, got)
	}
}

func TestStringTableGetOutOfRange(t *testing.T) {
	st := NewStringTable()
	st.Add("x")
	if got := st.Get(9999); got != "" {
		t.Errorf("Get(9999) = %q, want \"\"", got)
	}
}

func TestStringTableFromBytes(t *testing.T) {
	orig := NewStringTable()
	offs := map[string]uint32{}
	for _, s := range []string{"alpha", "beta", "gamma"} {
		offs[s] = orig.Add(s)
	}

	rebuilt := stringTableFromBytes(append([]byte(nil), orig.Bytes()...))
	for s, off := range offs {
		got, ok := rebuilt.Lookup(s)
		if !ok || got != off {
			t.Errorf("Lookup(%q) = %d,%v after rebuild, want %d,true", s, got, ok, off)
		}
		if rebuilt.Get(off) != s {
			t.Errorf("Get(%d) = %q after rebuild, want %q", off, rebuilt.Get(off), s)
		}
	}
}
