package project

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"drift/internal/source"
)

// Loader loads every module under a manifest's source roots and produces
// Shared source code for each.
type Loader struct {
	Manifest *Manifest
	FileSet  *source.FileSet
	Cache    *DiskCache // optional; nil disables caching
}

// NewLoader creates a loader over the given manifest.
func NewLoader(m *Manifest) *Loader {
	return &Loader{
		Manifest: m,
		FileSet:  source.NewFileSetWithBase(m.Root),
	}
}

// listModuleFiles returns a sorted list of all *.dr files under the
// manifest's source roots.
func (l *Loader) listModuleFiles() ([]string, error) {
	var files []string
	for _, root := range l.Manifest.RootDirs() {
		if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
			// A declared root that does not exist yet is an empty root.
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".dr") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Sorted for a deterministic load order.
	sort.Strings(files)
	return files, nil
}

// LoadAll loads every module file, at most jobs at a time (GOMAXPROCS when
// jobs <= 0). File content is normalized and digested by the FileSet; each
// module's code is the Shared variant wrapping the loaded bytes. Results
// come back in deterministic path order.
func (l *Loader) LoadAll(ctx context.Context, jobs int) ([]Module, error) {
	files, err := l.listModuleFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// FileSet is not synchronized; load sequentially, then hash and wrap
	// in parallel.
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := l.FileSet.Load(path)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, no mutex needed.
	modules := make([]Module, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			f := l.FileSet.Get(ids[i])
			name, err := l.moduleName(path)
			if err != nil {
				return err
			}

			meta := ModuleMeta{
				Name:        name,
				Path:        f.Path,
				FileID:      f.ID,
				ByteLen:     len(f.Content),
				Lines:       f.LineCount(),
				ASCII:       f.IsASCII(),
				ContentHash: Digest(f.Hash),
			}
			modules[i] = Module{Meta: meta, Code: f.Code()}

			if l.Cache != nil {
				// Cache write failures are not load failures.
				_ = l.Cache.Put(meta.ContentHash, payloadFromMeta(&meta))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}

// moduleName derives the canonical module name from a file path by making
// it relative to the innermost containing source root.
func (l *Loader) moduleName(path string) (string, error) {
	rel := path
	best := -1
	for _, root := range l.Manifest.RootDirs() {
		r, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(r, "..") {
			continue
		}
		if len(root) > best {
			best = len(root)
			rel = r
		}
	}
	return NormalizeModulePath(rel)
}
