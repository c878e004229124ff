package project

import (
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"drift/internal/source"
)

// Digest is a sha256 content digest.
type Digest [32]byte

// Short returns the first eight hex characters, for display.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:4])
}

// ModuleMeta describes one loaded module file.
type ModuleMeta struct {
	Name        string // canonical module path, e.g. "std/prelude"
	Path        string // file path as loaded
	FileID      source.FileID
	ByteLen     int
	Lines       int
	ASCII       bool // content passed the ASCII scan at load time
	ContentHash Digest
}

// Module pairs a module's metadata with its source code. Code is always the
// Shared variant: module text is runtime-produced and aliased by whoever
// needs it, so it never qualifies for the static fast path.
type Module struct {
	Meta ModuleMeta
	Code source.Code
}

// IsValidModuleIdent reports whether name is a legal module identifier:
// ASCII, starting with a letter or underscore.
func IsValidModuleIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NormalizeModulePath canonicalizes a module path to "a/b" form: strips a
// trailing .dr extension, converts separators to '/', and rejects empty
// segments, "." and "..".
func NormalizeModulePath(path string) (string, error) {
	path = strings.TrimSuffix(path, ".dr")
	for path != "" && (path[0] == '/' || path[0] == '\\') {
		path = path[1:]
	}

	var segments []string
	curr := ""
	flush := func() error {
		if curr == "" {
			return errors.New("empty path segment")
		}
		if curr == "." || curr == ".." {
			return errors.New("relative path segments are not allowed")
		}
		segments = append(segments, curr)
		curr = ""
		return nil
	}
	for _, r := range path {
		if r == '/' || r == '\\' {
			if err := flush(); err != nil {
				return "", err
			}
			continue
		}
		curr += string(r)
	}
	if curr != "" {
		if err := flush(); err != nil {
			return "", err
		}
	}
	if len(segments) == 0 {
		return "", errors.New("empty module path")
	}
	return strings.Join(segments, "/"), nil
}
