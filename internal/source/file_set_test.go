package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAdd(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.dr", []byte("let x = 1\nlet y = 2\n"))
	f := fs.Get(id)

	if f.Path != "test.dr" {
		t.Errorf("Path = %q", f.Path)
	}
	if !f.IsASCII() {
		t.Error("ASCII content must set FileASCII")
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("AddVirtual must set FileVirtual")
	}
	if f.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", f.LineCount())
	}
}

func TestFileSetNonASCII(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("cyrillic.dr", []byte("let имя = 1\n")))
	if f.IsASCII() {
		t.Error("non-ASCII content must not set FileASCII")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.dr")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Errorf("Content = %q, want %q", f.Content, "a\nb\n")
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("BOM strip must be recorded")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF normalization must be recorded")
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("m.dr", []byte("v1"))
	id2 := fs.AddVirtual("m.dr", []byte("v2"))

	f, ok := fs.GetByPath("m.dr")
	if !ok {
		t.Fatal("GetByPath must find the file")
	}
	if f.ID != id2 || string(f.Content) != "v2" {
		t.Errorf("GetByPath returned id=%d content=%q, want the latest version", f.ID, f.Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestFileCodeIsShared(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("m.dr", []byte("pure ascii")))

	c := f.Code()
	if _, ok := c.TryStaticASCII(); ok {
		t.Error("loader-produced code must be Shared, never StaticASCII")
	}
	if c.Text() != "pure ascii" {
		t.Errorf("Text = %q", c.Text())
	}
	// The code value aliases the file's bytes rather than copying them.
	if &c.Bytes()[0] != &f.Content[0] {
		t.Error("File.Code must wrap the content without copying")
	}
}

func TestBaseDirNeverEmpty(t *testing.T) {
	if got := NewFileSet().BaseDir(); got == "" {
		t.Error("BaseDir must fall back to a usable path, not the empty string")
	}
	dir := t.TempDir()
	if got := NewFileSetWithBase(dir).BaseDir(); got != dir {
		t.Errorf("BaseDir = %q, want %q", got, dir)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	cases := []struct {
		in, want string
		changed  bool
	}{
		{"", "", false},
		{"plain\n", "plain\n", false},
		{"a\r\nb", "a\nb", true},
		{"lone\rcr", "lone\rcr", false},
		{"\r\n\r\n", "\n\n", true},
	}
	for _, tc := range cases {
		got, changed := normalizeCRLF([]byte(tc.in))
		if string(got) != tc.want || changed != tc.changed {
			t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v", tc.in, got, changed, tc.want, tc.changed)
		}
	}
}
