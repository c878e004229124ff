package source

import "unsafe"

// SharedBuf is an immutable byte buffer shared by pointer between any number
// of Code values and the engine's external-string accounting. Go's shared
// immutable ownership primitive is the garbage collector: the buffer lives
// while any owner still points at it and is reclaimed when the last pointer
// drops, so concurrent readers never need locking. Nothing may mutate data
// after construction.
type SharedBuf struct {
	data []byte
}

// NewSharedBuf takes ownership of b without copying. The caller must not
// read or write b afterwards.
func NewSharedBuf(b []byte) *SharedBuf {
	return &SharedBuf{data: b}
}

func newSharedBufString(s string) *SharedBuf {
	return &SharedBuf{data: []byte(s)}
}

// Bytes returns the buffer content. The slice aliases the shared storage
// and must not be written through.
func (b *SharedBuf) Bytes() []byte {
	return b.data
}

// Text views the buffer as a string without copying, relying on the
// buffer's immutability.
func (b *SharedBuf) Text() string {
	if len(b.data) == 0 {
		return ""
	}
	return unsafe.String(&b.data[0], len(b.data))
}

// Len returns the buffer length in bytes.
func (b *SharedBuf) Len() int {
	return len(b.data)
}
