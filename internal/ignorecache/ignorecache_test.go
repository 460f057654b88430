package ignorecache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisabledCacheFallsThroughToDirectOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	h, ok := c.Open(dir)
	if !ok {
		t.Fatal("expected a scope to open")
	}
	if !h.IsIgnored("debug.log") {
		t.Error("expected debug.log to be ignored")
	}
}

func TestCachePersistsAcrossGenerations(t *testing.T) {
	dir := t.TempDir()
	scopeDir := filepath.Join(dir, "scope")
	if err := os.MkdirAll(scopeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scopeDir, ".gitignore"), []byte("*.tmp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cachePath := filepath.Join(dir, "cache.db")

	c1, err := Open(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	h1, ok := c1.Open(scopeDir)
	if !ok {
		t.Fatal("expected a scope on first generation")
	}
	if !h1.IsIgnored("x.tmp") {
		t.Error("expected x.tmp ignored on first generation")
	}
	if err := c1.Close(); err != nil {
		t.Fatalf("close first generation: %v", err)
	}

	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file to exist after close: %v", err)
	}

	c2, err := Open(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c2.Close() }()

	h2, ok := c2.Open(scopeDir)
	if !ok {
		t.Fatal("expected a scope on second generation (cache hit)")
	}
	if !h2.IsIgnored("y.tmp") {
		t.Error("expected y.tmp ignored via cached scope")
	}
}

func TestNoGitignoreReportsFalse(t *testing.T) {
	dir := t.TempDir()
	c, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	if _, ok := c.Open(dir); ok {
		t.Error("expected no scope for a directory without .gitignore")
	}
}
