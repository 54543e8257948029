package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.chirp", []byte("Root\n  Button\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("expected the virtual flag")
	}
	if fs.Len() != 1 {
		t.Errorf("expected 1 file, got %d", fs.Len())
	}

	start, end := fs.Resolve(Span{File: id, Start: 7, End: 13})
	if start.Line != 2 || start.Col != 3 {
		t.Errorf("expected 2:3, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 9 {
		t.Errorf("expected 2:9, got %d:%d", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.chirp", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{0, ""},
		{4, ""},
	}
	for _, c := range cases {
		if got := f.GetLine(c.line); got != c.want {
			t.Errorf("GetLine(%d) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.chirp")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Root\r\nButton")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "Root\nButton" {
		t.Errorf("expected normalized content, got %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %v", f.Flags)
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("ui/./scene.chirp", []byte("x"))
	if _, ok := fs.GetByPath("ui/scene.chirp"); !ok {
		t.Error("paths should be normalized before lookup")
	}
	if _, ok := fs.GetByPath("other.chirp"); ok {
		t.Error("unknown path should not resolve")
	}
}

func TestHashDiffersByContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.AddVirtual("a.chirp", []byte("Root")))
	b := fs.Get(fs.AddVirtual("b.chirp", []byte("Root")))
	c := fs.Get(fs.AddVirtual("c.chirp", []byte("Other")))
	if a.Hash != b.Hash {
		t.Error("equal content must hash equal")
	}
	if a.Hash == c.Hash {
		t.Error("different content must hash different")
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed {
		t.Error("expected a change")
	}
	if string(out) != "a\rb\nc" {
		t.Errorf("expected lone \\r kept, got %q", out)
	}
}
