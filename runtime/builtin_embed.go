// Package runtimeembed provides the builtin scripts compiled into the
// binary. Each script is embedded as a process-lifetime string and tagged
// StaticASCII exactly once, at package init, so handing it to the engine is
// always the zero-copy path.
package runtimeembed

import (
	_ "embed"

	"drift/internal/source"
)

var (
	//go:embed builtin/prelude.dr
	preludeSrc string
	//go:embed builtin/text.dr
	textSrc string
)

// Builtin is one embedded script.
type Builtin struct {
	Name string
	Code source.Code
}

// Builtins must be pure ASCII: MustStaticASCII aborts startup on a build
// where an embedded script picked up a non-ASCII byte.
var builtins = []Builtin{
	{Name: "prelude", Code: source.MustStaticASCII(preludeSrc)},
	{Name: "text", Code: source.MustStaticASCII(textSrc)},
}

// Builtins returns every embedded script in load order.
func Builtins() []Builtin {
	return builtins
}

// Lookup returns the named embedded script.
func Lookup(name string) (Builtin, bool) {
	for _, b := range builtins {
		if b.Name == name {
			return b, true
		}
	}
	return Builtin{}, false
}
