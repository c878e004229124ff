// Package version carries the build fingerprint of the drift toolchain.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable at build time via -ldflags.
var (
	Major = "0"
	Minor = "1"
	Patch = "0"

	// Channel is the release channel suffix (dev, beta, or empty for a
	// tagged release).
	Channel = "dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgCyan, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgMagenta, color.Bold)
)

// Version renders the semantic version, e.g. "0.1.0-dev", colorized when
// the terminal allows it.
func Version() string {
	v := majorColor.Sprint(Major) + "." + minorColor.Sprint(Minor) + "." + patchColor.Sprint(Patch)
	if Channel != "" {
		v += "-" + Channel
	}
	return v
}

// Fingerprint returns the one-line build fingerprint: version plus whatever
// commit and date metadata the build recorded.
func Fingerprint() string {
	parts := []string{"drift " + Version()}
	if GitCommit != "" {
		parts = append(parts, "commit "+GitCommit)
	}
	if BuildDate != "" {
		parts = append(parts, "built "+BuildDate)
	}
	return strings.Join(parts, ", ")
}
