// Package project resolves drift projects: the drift.toml manifest, the
// module files under its source roots, and the per-module metadata cache.
// It is the producer of Shared source code for the engine.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrNoManifest is returned when no drift.toml is found walking up from the
// start directory.
var ErrNoManifest = errors.New("no drift.toml found")

// Manifest is a located and parsed drift.toml.
type Manifest struct {
	Path   string // absolute path to drift.toml
	Root   string // directory containing it
	Config Config
}

// Config mirrors the drift.toml schema.
type Config struct {
	Package PackageConfig `toml:"package"`
	Source  SourceConfig  `toml:"source"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	Main string `toml:"main"`
}

type SourceConfig struct {
	// Roots are directories, relative to the manifest, searched for *.dr
	// files. Defaults to ["."].
	Roots []string `toml:"roots"`
}

// FindManifest walks up from startDir looking for drift.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "drift.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and parses the manifest governing startDir.
func LoadManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	cfg, err := parseConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

func parseConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if len(cfg.Source.Roots) == 0 {
		cfg.Source.Roots = []string{"."}
	}
	return cfg, nil
}

// RootDirs returns the absolute source root directories.
func (m *Manifest) RootDirs() []string {
	dirs := make([]string, 0, len(m.Config.Source.Roots))
	for _, r := range m.Config.Source.Roots {
		if filepath.IsAbs(r) {
			dirs = append(dirs, filepath.Clean(r))
			continue
		}
		dirs = append(dirs, filepath.Join(m.Root, r))
	}
	return dirs
}
