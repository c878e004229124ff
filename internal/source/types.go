package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (test, stdin) rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileASCII records that every byte of the content passed the ASCII scan
	// at load time. The flag is informational: runtime-loaded text becomes
	// Shared code, which never takes the static fast path regardless of
	// content.
	FileASCII
)

// File captures metadata and content for a single loaded source file.
// Content is immutable after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// IsASCII reports whether the content passed the ASCII scan at load time.
func (f *File) IsASCII() bool {
	return f.Flags&FileASCII != 0
}

// LineCount returns the number of lines in the file. A trailing newline
// does not start a new line; the empty file has zero lines.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx)
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// Code wraps the file content as shared runtime code. All callers alias the
// same immutable bytes through the shared buffer.
func (f *File) Code() Code {
	return FromShared(NewSharedBuf(f.Content))
}
