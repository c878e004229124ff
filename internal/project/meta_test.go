package project

import "testing"

func TestNormalizeModulePath(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"main.dr", "main", false},
		{"std/prelude.dr", "std/prelude", false},
		{"std\\prelude.dr", "std/prelude", false},
		{"/leading/slash.dr", "leading/slash", false},
		{"no_ext", "no_ext", false},
		{"", "", true},
		{".", "", true},
		{"a/../b", "", true},
		{"a//b", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeModulePath(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeModulePath(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeModulePath(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeModulePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidModuleIdent(t *testing.T) {
	valid := []string{"main", "_hidden", "std2", "Prelude"}
	invalid := []string{"", "2fast", "имя", "with-dash", "dot.name"}

	for _, name := range valid {
		if !IsValidModuleIdent(name) {
			t.Errorf("%q must be a valid module identifier", name)
		}
	}
	for _, name := range invalid {
		if IsValidModuleIdent(name) {
			t.Errorf("%q must not be a valid module identifier", name)
		}
	}
}

func TestDigestShort(t *testing.T) {
	var d Digest
	d[0], d[1], d[2], d[3] = 0xde, 0xad, 0xbe, 0xef
	if d.Short() != "deadbeef" {
		t.Errorf("Short = %q", d.Short())
	}
}
