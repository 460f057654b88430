package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRootTruncatesTrailingSlashes(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveRoot(dir + "///")
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestResolveRootLeavesBareSlashAlone(t *testing.T) {
	got, err := resolveRoot("/")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/" {
		t.Errorf("got %q, want \"/\"", got)
	}
}

func TestResolveRootRejectsMissingPath(t *testing.T) {
	if _, err := resolveRoot("/no/such/path/should/exist"); err == nil {
		t.Error("expected an error for a nonexistent path")
	}
}

func TestResolveRootRejectsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveRoot(file); err == nil {
		t.Error("expected an error for a root path that is a regular file")
	}
}
