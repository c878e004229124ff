// Package engine holds the script engine's string heap: the boundary that
// source text crosses when it becomes an engine-native string object.
package engine

import (
	"fmt"
	"unicode/utf8"

	"drift/internal/source"
)

// Handle identifies a string object within a Scope. Handles are
// monotonically increasing and never reused within a scope's lifetime.
type Handle uint64

// stringObject is one engine-native string. External objects reference
// caller-owned process-lifetime bytes directly; the rest own a private copy.
type stringObject struct {
	data     []byte
	external bool // aliases static caller bytes, engine must never free or mutate
	oneByte  bool // pure ASCII, single-byte representation
	alive    bool
}

// Scope is a live execution scope of the engine. It owns every string
// object created through it and is not safe for concurrent use; the engine
// runs one scope per thread of execution.
type Scope struct {
	next Handle
	objs map[Handle]*stringObject
}

// NewScope creates an empty execution scope.
func NewScope() *Scope {
	return &Scope{
		next: 1,
		objs: make(map[Handle]*stringObject, 64),
	}
}

// NewString converts source text into an engine string object.
//
// When the text proves itself StaticASCII, the object references the static
// bytes directly with the single-byte representation: no copy, no encoding
// validation. That is legal precisely because those bytes are guaranteed
// ASCII and alive for the whole process. Every other variant goes through
// the general UTF-8 constructor, which copies. The variant, not the
// content, picks the path.
func (s *Scope) NewString(c source.Code) Handle {
	if b, ok := c.TryStaticASCII(); ok {
		return s.newExternalOneByte(b)
	}
	return s.newFromUTF8(c.Bytes())
}

// newExternalOneByte wraps caller-owned ASCII bytes without copying.
func (s *Scope) newExternalOneByte(b []byte) Handle {
	return s.alloc(&stringObject{
		data:     b,
		external: true,
		oneByte:  true,
		alive:    true,
	})
}

// newFromUTF8 copies valid UTF-8 bytes into an engine-owned buffer.
func (s *Scope) newFromUTF8(b []byte) Handle {
	if !utf8.Valid(b) {
		panic(fmt.Errorf("engine: NewString called with invalid UTF-8 (%d bytes)", len(b)))
	}
	return s.alloc(&stringObject{
		data:  append([]byte(nil), b...),
		alive: true,
	})
}

func (s *Scope) alloc(obj *stringObject) Handle {
	h := s.next
	s.next++
	s.objs[h] = obj
	return h
}

func (s *Scope) get(h Handle) *stringObject {
	if h == 0 {
		panic(fmt.Errorf("engine: invalid handle 0"))
	}
	obj, ok := s.objs[h]
	if !ok || obj == nil {
		panic(fmt.Errorf("engine: invalid handle %d", h))
	}
	if !obj.alive {
		panic(fmt.Errorf("engine: use after free: handle %d", h))
	}
	return obj
}

// Bytes returns the object's content. External objects return the shared
// static bytes; the caller must not mutate them.
func (s *Scope) Bytes(h Handle) []byte {
	return s.get(h).data
}

// Text returns the object's content as a string.
func (s *Scope) Text(h Handle) string {
	return string(s.get(h).data)
}

// Len returns the object's byte length.
func (s *Scope) Len(h Handle) int {
	return len(s.get(h).data)
}

// IsExternal reports whether the object references caller-owned static
// bytes instead of an engine-owned copy.
func (s *Scope) IsExternal(h Handle) bool {
	return s.get(h).external
}

// IsOneByte reports whether the object uses the single-byte (ASCII)
// representation.
func (s *Scope) IsOneByte(h Handle) bool {
	return s.get(h).oneByte
}

// Free releases a string object. Freeing an already-freed or unknown
// handle panics. External objects only drop the reference; the static
// bytes they alias live on.
func (s *Scope) Free(h Handle) {
	if h == 0 {
		panic(fmt.Errorf("engine: invalid handle 0"))
	}
	obj, ok := s.objs[h]
	if !ok || obj == nil {
		panic(fmt.Errorf("engine: invalid handle %d", h))
	}
	if !obj.alive {
		panic(fmt.Errorf("engine: double free: handle %d", h))
	}
	obj.alive = false
	obj.data = nil
}

// Live returns the number of objects not yet freed.
func (s *Scope) Live() int {
	n := 0
	for _, obj := range s.objs {
		if obj.alive {
			n++
		}
	}
	return n
}
