// Package walker implements per-directory expansion: enumerate one
// directory's entries, filter and emit matches, and enqueue one child
// WorkItem per subdirectory.
//
// # Why This Design?
//
// Each directory is owned by exactly one worker for its full enumeration —
// the design does not shard a single large directory across workers. This
// is a deliberate simplicity/locality trade-off (spec.md §9): one worker
// emits all of a directory's matches in a single pass. Each subdirectory is
// put on the queue as soon as it is found, so other workers may start on a
// child before its parent's enumeration has finished.
package walker

import (
	"os"
	"strings"

	"github.com/jchain/ff/internal/flagman"
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/options"
	"github.com/jchain/ff/internal/queue"
	"github.com/jchain/ff/internal/stats"
)

// Walker expands one directory per Walk call against a shared, read-only
// Options snapshot. A single Walker value is safe for concurrent use by
// multiple workers: it holds no per-directory state of its own (matcher
// scratch, if any, lives inside options.Options.Matcher).
type Walker struct {
	opts    *options.Options
	queue   *queue.Queue
	flagman *flagman.Flagman
	out     *Emitter
	stats   *stats.Stats
}

// New creates a Walker that enqueues discovered subdirectories onto q,
// acquiring a flagman credit for each one, and writes matches via out. st may
// be nil, in which case progress/stat counters are simply not updated.
func New(opts *options.Options, q *queue.Queue, fm *flagman.Flagman, out *Emitter, st *stats.Stats) *Walker {
	return &Walker{opts: opts, queue: q, flagman: fm, out: out, stats: st}
}

// Walk processes a single directory WorkItem: it enumerates entries,
// applies the hidden/ignore/match/type filters, emits matches, and enqueues
// one child WorkItem per subdirectory at priority depth+1.
//
// Directory-open failures (permission denied, ENOENT from a race, etc.) are
// silent and non-fatal (spec.md §7): a subtree the caller can't read is
// simply absent from the output, not a reason to abort the run.
func (w *Walker) Walk(item *queue.WorkItem) {
	if w.opts.MaxDepth > 0 && item.Depth >= w.opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(item.Path)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}

		if w.stats != nil {
			w.stats.EntrySeen()
		}

		if w.opts.SkipHidden && isHiddenOrBackup(name) {
			continue
		}

		if !w.opts.NoIgnore && item.Scope.IsIgnored(name) {
			continue
		}

		fullPath := item.Path + "/" + name

		if w.matches(name) && w.typeMatches(entry) {
			w.out.Emit(item.Path, name, entryType(entry))
			if w.stats != nil {
				w.stats.MatchEmitted()
			}
		}

		if entry.IsDir() {
			w.recurse(item, fullPath, name)
		}
	}

	if w.stats != nil {
		w.stats.DirScanned()
	}
}

// isHiddenOrBackup implements the skip_hidden rule from spec.md §4.4:
// basename starts with '.' or ends with '~'.
func isHiddenOrBackup(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

// matches applies the compiled basename matcher; mode NONE always matches.
func (w *Walker) matches(basename string) bool {
	return w.opts.Matcher.Match(basename)
}

// typeMatches applies the --type filter. An UNKNOWN-typed entry never
// matches a specific type filter (spec.md §4.4, §9).
func (w *Walker) typeMatches(entry os.DirEntry) bool {
	if w.opts.OnlyType == options.AnyType {
		return true
	}
	t := entryType(entry)
	if t == options.UnknownType {
		return false
	}
	return t == w.opts.OnlyType
}

// recurse constructs the child's ignore-scope and enqueues a WorkItem for
// it. A flagman credit is acquired before the enqueue, never after, so the
// counter can never undercount live work (spec.md §4.6 termination
// argument).
func (w *Walker) recurse(item *queue.WorkItem, childPath, basename string) {
	w.flagman.Acquire()

	childScope := w.childScope(item, childPath)

	w.queue.Put(&queue.WorkItem{
		Path:  childPath,
		Depth: item.Depth + 1,
		Scope: childScope,
	}, item.Depth+1)
}

// childScope resolves the ignore-scope a child directory should carry: a
// freshly opened scope if childPath is itself a scope root, otherwise a
// duplicated reference to the parent's scope (spec.md §4.4 recursion step).
// Opening goes through opts.OpenScope so an ignorecache.Cache, if
// configured, sees every scope-root check.
func (w *Walker) childScope(item *queue.WorkItem, childPath string) *ignorescope.Handle {
	if w.opts.NoIgnore {
		return nil
	}
	if h, ok := w.opts.OpenScope(childPath); ok {
		return h
	}
	return ignorescope.Duplicate(item.Scope)
}

// entryType maps an os.DirEntry to the options.EntryType vocabulary.
// os.DirEntry.Type() reflects the platform d_type without an extra stat(2)
// call when d_type is populated; when it is UNKNOWN (some filesystems/FUSE
// mounts), os.ReadDir resolves the type with an lstat before Walker sees
// the entry, so such entries are classified (and, if directories, recursed
// into) like any other. UnknownType is returned only for a mode that fits
// none of the categories below.
func entryType(entry os.DirEntry) options.EntryType {
	mode := entry.Type()
	switch {
	case mode.IsRegular():
		return options.RegularFile
	case mode.IsDir():
		return options.Directory
	case mode&os.ModeSymlink != 0:
		return options.Symlink
	case mode&os.ModeNamedPipe != 0:
		return options.Fifo
	case mode&os.ModeSocket != 0:
		return options.Socket
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			return options.CharDevice
		}
		return options.BlockDevice
	default:
		return options.UnknownType
	}
}
