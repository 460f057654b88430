// Package ignorescope provides a reference-counted handle to an opened
// ignore-scope — the per-directory set of exclusion rules (.gitignore-style)
// that Walker consults before recursing into or emitting an entry.
//
// # Why a refcounted handle?
//
// A child directory either starts a new ignore-scope (it is itself a scope
// root — it has its own .gitignore) or inherits its parent's. Without
// sharing, every descendant WorkItem would re-open and re-parse the scope.
// With sharing, the scope stays alive exactly as long as some descendant
// WorkItem still references it, which is precisely its natural lifetime —
// a handle is duplicated (atomic refcount bump) on inheritance and released
// when the WorkItem carrying it finishes processing.
package ignorescope

import (
	"os"
	"path/filepath"
	"sync/atomic"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Handle is a reference-counted pointer to an opened ignore-scope. The zero
// value (nil *Handle) is a legal, zero-cost "no ignore scope in effect"
// value whose Release is a no-op.
type Handle struct {
	matcher *gitignore.GitIgnore
	refs    *atomic.Int64
}

const ignoreFileName = ".gitignore"

// Open attempts to open a new ignore-scope rooted at dir. If dir contains no
// .gitignore file, or it cannot be parsed, Open returns (nil, false) — the
// caller is expected to fall back to duplicating the enclosing scope, the
// same way a failed git_repository_open falls back to the parent repo in
// the original implementation.
func Open(dir string) (*Handle, bool) {
	path := filepath.Join(dir, ignoreFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}

	matcher, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, false
	}

	refs := &atomic.Int64{}
	refs.Store(1)
	return &Handle{matcher: matcher, refs: refs}, true
}

// FromLines compiles an already-read set of .gitignore rule lines into a
// fresh, singly-referenced Handle. It exists so a cache of raw rule text
// (internal/ignorecache) can reconstruct a scope without re-reading the
// file from disk.
func FromLines(lines []string) (*Handle, bool) {
	matcher := gitignore.CompileIgnoreLines(lines...)
	if matcher == nil {
		return nil, false
	}
	refs := &atomic.Int64{}
	refs.Store(1)
	return &Handle{matcher: matcher, refs: refs}, true
}

// Duplicate returns a new reference to the same scope, incrementing the
// refcount atomically. Duplicating a nil handle is a no-op that returns nil.
func Duplicate(h *Handle) *Handle {
	if h == nil {
		return nil
	}
	h.refs.Add(1)
	return &Handle{matcher: h.matcher, refs: h.refs}
}

// Release drops this reference. When the last reference is released
// (the 1→0 transition), the underlying scope is freed. Releasing a nil
// handle is a no-op.
func Release(h *Handle) {
	if h == nil {
		return
	}
	if h.refs.Add(-1) == 0 {
		h.matcher = nil
	}
}

// IsIgnored reports whether basename is excluded by this scope. A nil
// handle (no scope in effect) never ignores anything.
func (h *Handle) IsIgnored(basename string) bool {
	if h == nil || h.matcher == nil {
		return false
	}
	return h.matcher.MatchesPath(basename)
}
