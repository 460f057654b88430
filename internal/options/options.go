// Package options holds the read-only configuration snapshot shared by every
// component of the traversal engine. It is built once by cmd/ff before the
// worker pool starts and never mutated afterward, so no synchronization is
// needed to read it concurrently from multiple workers.
package options

import (
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/matcher"
)

// EntryType identifies a filesystem entry kind, mirroring the POSIX d_type
// values spec.md §6 enumerates for --type.
type EntryType int

const (
	// AnyType matches every entry kind ("only_type == any" in spec.md §3).
	AnyType EntryType = iota
	BlockDevice
	CharDevice
	Directory
	Fifo
	Symlink
	RegularFile
	Socket
	// UnknownType never matches a specific --type filter and is never
	// recursed into. Walker assigns it only to an entry whose resolved mode
	// fits none of the kinds above; os.ReadDir already resolves an UNKNOWN
	// d_type with an lstat.
	UnknownType
)

// ParseEntryType maps the single-letter --type argument to an EntryType, or
// reports ok=false for anything else (options.c lines 80-105).
func ParseEntryType(c byte) (t EntryType, ok bool) {
	switch c {
	case 'b':
		return BlockDevice, true
	case 'c':
		return CharDevice, true
	case 'd':
		return Directory, true
	case 'n':
		return Fifo, true
	case 'l':
		return Symlink, true
	case 'f':
		return RegularFile, true
	case 's':
		return Socket, true
	default:
		return 0, false
	}
}

// Options is the immutable configuration snapshot consumed by Walker.
type Options struct {
	// MaxDepth is the maximum traversal depth; -1 means unlimited. 0 is
	// never a valid value here — cmd/ff rejects --depth 0 at parse time,
	// matching options.c's "0 cannot mean unlimited" rule (spec.md §9).
	MaxDepth int
	// OnlyType restricts emission to one filesystem-entry-type, or AnyType.
	OnlyType EntryType
	// SkipHidden excludes basenames starting with '.' or ending with '~'.
	SkipHidden bool
	// NoIgnore disables ignore-scope checks entirely.
	NoIgnore bool
	// ICase records --ignore-case. Case folding for both regex and glob
	// modes is baked into the compiled Matcher; Walker does not read this
	// field.
	ICase bool
	// Mode selects pattern interpretation: none, regex, or glob.
	Mode matcher.Mode
	// Colorize enables ANSI-colorized output.
	Colorize bool
	// Matcher is the compiled basename matcher (external collaborator).
	Matcher matcher.Matcher
	// Threads is the worker pool size.
	Threads int
	// Deterministic is accepted for CLI compatibility but has no effect on
	// scheduling (spec.md §9 "ambiguities in source behavior").
	Deterministic bool
	// OpenScope opens the ignore-scope rooted at dir. cmd/ff sets this to
	// ignorescope.Open by default, or to an ignorecache.Cache's Open method
	// when --cache-file is given, so Walker and Driver never need to know
	// whether caching is in effect.
	OpenScope func(dir string) (*ignorescope.Handle, bool)
}
