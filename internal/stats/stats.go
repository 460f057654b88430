// Package stats tracks run-wide counters and renders them through an
// optional progress spinner, in the same enabled/disabled no-op idiom the
// teacher's internal/progress package uses, generalized from "bytes
// scanned/matched" to "entries scanned/matched" for a name-matching tool.
package stats

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// Stats accumulates atomic counters for lock-free updates from any worker,
// the same trade-off the teacher's internal/scanner.stats type makes:
// individual reads may not see a perfectly consistent cross-counter
// snapshot, which is fine for progress display.
type Stats struct {
	rootsSeeded atomic.Int64
	dirsScanned atomic.Int64
	entriesSeen atomic.Int64
	matchesEmit atomic.Int64
	startTime   time.Time
	bar         *progressbar.ProgressBar
}

// New creates a Stats tracker. When showProgress is true, a spinner is
// rendered to stderr as the run proceeds; when false, all bar-related
// methods are no-ops (the bar field stays nil).
func New(showProgress bool) *Stats {
	s := &Stats{startTime: time.Now()}
	if showProgress {
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionThrottle(50*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(false),
		)
	}
	return s
}

// RootSeeded records that one more root WorkItem has been seeded.
func (s *Stats) RootSeeded() { s.rootsSeeded.Add(1); s.describe() }

// DirScanned records that one directory's enumeration has completed.
func (s *Stats) DirScanned() { s.dirsScanned.Add(1); s.describe() }

// EntrySeen records that one directory entry was examined.
func (s *Stats) EntrySeen() { s.entriesSeen.Add(1) }

// MatchEmitted records that one entry was emitted as a match.
func (s *Stats) MatchEmitted() { s.matchesEmit.Add(1); s.describe() }

func (s *Stats) describe() {
	if s.bar != nil {
		s.bar.Describe(s.String())
	}
}

// Finish stops the progress bar (if any) and returns the final summary.
func (s *Stats) Finish() string {
	summary := s.String()
	if s.bar != nil {
		_ = s.bar.Finish()
	}
	return summary
}

// String renders a humanized one-line run summary, in the teacher's
// "Scanned N (bytes), matched N files in T.Ts" idiom.
func (s *Stats) String() string {
	return fmt.Sprintf("scanned %s entries in %s directories, matched %s in %.1fs",
		humanize.Comma(s.entriesSeen.Load()),
		humanize.Comma(s.dirsScanned.Load()),
		humanize.Comma(s.matchesEmit.Load()),
		time.Since(s.startTime).Seconds())
}
