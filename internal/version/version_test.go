package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionFormat(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	v := Version()
	if strings.Count(v, ".") != 2 {
		t.Errorf("Version %q is not major.minor.patch", v)
	}
	if !strings.HasSuffix(v, "-"+Channel) {
		t.Errorf("Version %q does not carry the %q channel suffix", v, Channel)
	}
}

func TestFingerprint(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	if !strings.HasPrefix(Fingerprint(), "drift ") {
		t.Errorf("Fingerprint %q must lead with the tool name", Fingerprint())
	}

	GitCommit = "abc1234"
	BuildDate = "2026-08-28"
	defer func() { GitCommit, BuildDate = "", "" }()

	fp := Fingerprint()
	if !strings.Contains(fp, "commit abc1234") || !strings.Contains(fp, "built 2026-08-28") {
		t.Errorf("Fingerprint %q missing recorded build metadata", fp)
	}
}
