package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, manifest string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "drift.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const basicManifest = `
[package]
name = "demo"
main = "main"

[source]
roots = ["src"]
`

func TestLoadAll(t *testing.T) {
	dir := writeProject(t, basicManifest, map[string]string{
		"src/main.dr":        "print(\"hi\")\n",
		"src/std/prelude.dr": "let pi = 3\n",
		"src/notes.txt":      "ignored",
	})

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(m)

	modules, err := loader.LoadAll(context.Background(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 {
		t.Fatalf("loaded %d modules, want 2", len(modules))
	}

	byName := map[string]Module{}
	for _, mod := range modules {
		byName[mod.Meta.Name] = mod
	}
	main, ok := byName["main"]
	if !ok {
		t.Fatalf("missing module %q; got %v", "main", byName)
	}
	if main.Code.Text() != "print(\"hi\")\n" {
		t.Errorf("main code = %q", main.Code.Text())
	}
	if !main.Meta.ASCII {
		t.Error("main module content is ASCII")
	}
	if _, ok := main.Code.TryStaticASCII(); ok {
		t.Error("loader output must be Shared code, never StaticASCII")
	}
	if _, ok := byName["std/prelude"]; !ok {
		t.Errorf("missing module %q; got %v", "std/prelude", byName)
	}
}

func TestLoadAllEmptyProject(t *testing.T) {
	dir := writeProject(t, basicManifest, nil)
	m, err := LoadManifest(filepath.Join(dir))
	if err != nil {
		t.Fatal(err)
	}
	modules, err := NewLoader(m).LoadAll(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 0 {
		t.Errorf("empty project loaded %d modules", len(modules))
	}
}

func TestLoadAllCancelled(t *testing.T) {
	dir := writeProject(t, basicManifest, map[string]string{
		"src/a.dr": "a",
		"src/b.dr": "b",
	})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(m).LoadAll(ctx, 1); err == nil {
		t.Error("cancelled context must fail the load")
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	if err == nil {
		// An enclosing drift.toml above the temp dir shadows this test.
		t.Skip("found an enclosing manifest")
	}
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("err = %v, want ErrNoManifest", err)
	}
}

func TestLoadAllWritesCache(t *testing.T) {
	dir := writeProject(t, basicManifest, map[string]string{
		"src/main.dr": "x\n",
	})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(m)
	loader.Cache = cache

	modules, err := loader.LoadAll(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	var payload CachePayload
	hit, err := cache.Get(modules[0].Meta.ContentHash, &payload)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected a cache hit after LoadAll")
	}
	if payload.Name != "main" || payload.ByteLen != 2 || !payload.ASCII {
		t.Errorf("payload = %+v", payload)
	}
}
