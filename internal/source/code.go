package source

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"net/url"
	"unicode/utf8"
	"unsafe"
)

// codeKind discriminates the three storage strategies of a Code value.
// The zero value is kindStaticASCII so that the zero Code is the empty
// static-ASCII string with no allocation behind it.
type codeKind uint8

const (
	kindStaticASCII codeKind = iota // borrowed process-lifetime text, every byte < 0x80
	kindStatic                      // borrowed process-lifetime text, may contain non-ASCII bytes
	kindShared                      // shared immutable runtime buffer
)

// Code is an immutable source-text value handed across the engine boundary.
// It is a tagged union over three representations: static text (a Go string
// constant or embedded asset, alive for the whole process), static text
// proven to be pure 7-bit ASCII, and a shared runtime buffer produced by the
// module loader. All three always hold valid UTF-8.
//
// The StaticASCII case exists so the engine can build its string object by
// referencing the bytes directly, skipping both the copy and the UTF-8
// re-validation; see engine.Scope.NewString. Variant, not content, decides
// that fast path: the ASCII scan runs only at construction, never later.
//
// Code is a value type. Equality is content-based and must go through Equal;
// the == operator compares representations, not text.
type Code struct {
	kind   codeKind
	static string     // kindStatic / kindStaticASCII
	shared *SharedBuf // kindShared
}

// IsASCII reports whether every byte of b has the high bit clear. It scans
// one byte at a time and stops at the first byte >= 0x80; the empty span is
// vacuously ASCII. One pass, no allocation.
func IsASCII(b []byte) bool {
	for i := 0; i < len(b); i++ {
		if b[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// FromStatic wraps process-lifetime text, tagging it StaticASCII when the
// scan passes and Static otherwise. Never fails. The caller vouches that s
// outlives every use of the returned Code (string constants and go:embed
// strings trivially do).
func FromStatic(s string) Code {
	if isASCIIString(s) {
		return Code{kind: kindStaticASCII, static: s}
	}
	return Code{kind: kindStatic, static: s}
}

// MustStaticASCII wraps process-lifetime text that is required to be pure
// ASCII. A non-ASCII byte means the embedded asset itself is broken, so this
// panics rather than returning a degraded value: callers rely on the
// StaticASCII guarantee to skip the engine's own validation.
func MustStaticASCII(s string) Code {
	if !isASCIIString(s) {
		panic(fmt.Errorf("source: text %q contains non-ASCII bytes and cannot be tagged StaticASCII", clip(s, 32)))
	}
	return Code{kind: kindStaticASCII, static: s}
}

// Ownership is the answer an Ownable gives about its backing text: either a
// genuinely owned buffer, or a static borrow in disguise. Construct it with
// OwnedText or StaticText.
type Ownership struct {
	owned   []byte
	static  string
	isOwned bool
}

// OwnedText declares b a genuinely owned buffer. The Code built from it
// takes the buffer over without copying; the caller must not touch b again.
func OwnedText(b []byte) Ownership {
	return Ownership{owned: b, isOwned: true}
}

// StaticText declares s a process-lifetime borrow.
func StaticText(s string) Ownership {
	return Ownership{static: s}
}

// Ownable is implemented by text sources that can report, without copying,
// whether they hold an owned buffer or a static borrow.
type Ownable interface {
	Ownership() Ownership
}

// OwnedBytes is a runtime-produced buffer that hands itself over to the Code
// built from it.
type OwnedBytes []byte

func (b OwnedBytes) Ownership() Ownership { return OwnedText(b) }

// StaticString is a process-lifetime borrow participating in the ASCII
// fast path.
type StaticString string

func (s StaticString) Ownership() Ownership { return StaticText(string(s)) }

// FromOwnable builds a Code from anything that knows its own ownership.
// Owned buffers become Shared without a copy and without an ASCII scan (the
// fast path is moot for runtime text); static borrows go through FromStatic
// and keep the scan's benefit.
func FromOwnable(v Ownable) Code {
	o := v.Ownership()
	if o.isOwned {
		return FromShared(NewSharedBuf(o.owned))
	}
	return FromStatic(o.static)
}

// FromShared wraps a pre-existing shared buffer directly. No scan, no copy.
func FromShared(b *SharedBuf) Code {
	return Code{kind: kindShared, shared: b}
}

// FromString builds a Shared Code from a runtime string, skipping the ASCII
// scan. Go strings cannot surrender their backing storage, so this copies
// the bytes once into the shared buffer.
func FromString(s string) Code {
	return FromShared(newSharedBufString(s))
}

// FromURL builds a Shared Code from a module URL. URLs are short runtime
// values for which the static fast path does not apply.
func FromURL(u *url.URL) Code {
	return FromString(u.String())
}

// Bytes returns a read-only view of the content regardless of variant.
// O(1), no copy. The caller must not mutate the returned slice.
func (c Code) Bytes() []byte {
	switch c.kind {
	case kindStatic, kindStaticASCII:
		return readOnlyBytes(c.static)
	case kindShared:
		return c.shared.Bytes()
	}
	panic(fmt.Errorf("source: corrupt Code kind %d", c.kind))
}

// Text returns the content as a string regardless of variant. O(1), no copy.
func (c Code) Text() string {
	switch c.kind {
	case kindStatic, kindStaticASCII:
		return c.static
	case kindShared:
		return c.shared.Text()
	}
	panic(fmt.Errorf("source: corrupt Code kind %d", c.kind))
}

// Len returns the content length in bytes.
func (c Code) Len() int {
	switch c.kind {
	case kindStatic, kindStaticASCII:
		return len(c.static)
	case kindShared:
		return c.shared.Len()
	}
	panic(fmt.Errorf("source: corrupt Code kind %d", c.kind))
}

// TryStaticASCII returns the borrowed byte span only when the variant is
// StaticASCII. It reports false for Static and Shared even when their
// content happens to be all-ASCII: the scan runs at construction only, and
// the engine fast path keys on the proof, not the bytes.
func (c Code) TryStaticASCII() ([]byte, bool) {
	if c.kind == kindStaticASCII {
		return readOnlyBytes(c.static), true
	}
	return nil, false
}

// Truncate shortens c to its first n bytes.
//
// Preconditions: 0 <= n <= c.Len() and n must land on a UTF-8 boundary.
// Both are checked and a violation panics; the index is never clamped or
// repaired, since that would hide a caller bug.
//
// Static and StaticASCII re-slice the borrowed text for free and keep their
// variant (a prefix of ASCII is ASCII; a prefix of untagged text stays
// untagged, no re-scan). Shared cannot shrink in place while other owners
// hold the full buffer, so it copies the prefix into a fresh buffer —
// possibly slow, not for hot loops.
func (c *Code) Truncate(n int) {
	if n < 0 || n > c.Len() {
		panic(fmt.Errorf("source: truncate index %d out of range [0, %d]", n, c.Len()))
	}
	switch c.kind {
	case kindStatic, kindStaticASCII:
		if n < len(c.static) && !utf8.RuneStart(c.static[n]) {
			panic(fmt.Errorf("source: truncate index %d is not a UTF-8 boundary", n))
		}
		c.static = c.static[:n]
	case kindShared:
		b := c.shared.Bytes()
		if n < len(b) && !utf8.RuneStart(b[n]) {
			panic(fmt.Errorf("source: truncate index %d is not a UTF-8 boundary", n))
		}
		c.shared = NewSharedBuf(append([]byte(nil), b[:n]...))
	default:
		panic(fmt.Errorf("source: corrupt Code kind %d", c.kind))
	}
}

// Equal reports whether c and o hold the same bytes, ignoring the variant.
func (c Code) Equal(o Code) bool {
	return c.Text() == o.Text()
}

// Compare orders two Code values by byte content, ignoring the variant.
func (c Code) Compare(o Code) int {
	return bytes.Compare(c.Bytes(), o.Bytes())
}

// Hash returns an FNV-1a hash of the content. Values that are Equal hash
// identically regardless of variant.
func (c Code) Hash() uint64 {
	h := fnv.New64a()
	h.Write(c.Bytes())
	return h.Sum64()
}

// String implements fmt.Stringer with the logical text.
func (c Code) String() string {
	return c.Text()
}

// readOnlyBytes views a string's bytes without copying. The slice aliases
// the string's storage and must never be written through.
func readOnlyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
