// Package driver seeds the initial work, waits for quiescence, and tears
// down the worker pool. It is the Go analogue of ff.c's main(): the startup
// sequence in spec.md §4.6, translated goroutine-for-thread.
package driver

import (
	"github.com/jchain/ff/internal/flagman"
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/options"
	"github.com/jchain/ff/internal/pool"
	"github.com/jchain/ff/internal/queue"
	"github.com/jchain/ff/internal/stats"
	"github.com/jchain/ff/internal/walker"
)

// Driver orchestrates one traversal run over a set of root paths.
type Driver struct {
	opts  *options.Options
	out   *walker.Emitter
	stats *stats.Stats
}

// New creates a Driver. out receives matched paths; st (may be nil)
// receives progress/stat updates as the run proceeds.
func New(opts *options.Options, out *walker.Emitter, st *stats.Stats) *Driver {
	return &Driver{opts: opts, out: out, stats: st}
}

// Run performs the full startup/seed/wait/terminate/join sequence described
// in spec.md §4.6:
//
//  1. Initialize the queue and flagman.
//  2. Acquire one seeding credit so Wait cannot return before seeding
//     finishes.
//  3. Spawn N workers.
//  4. For each root, open its ignore-scope and PutHead a depth-0 WorkItem,
//     acquiring a flagman credit first.
//  5. Release the seeding credit.
//  6. Wait for the flagman to reach zero.
//  7. PutTail N terminators.
//  8. Join all workers (Pool.Run returns once they've all exited).
func (d *Driver) Run(roots []string) {
	q := queue.New()
	fm := flagman.New()
	w := walker.New(d.opts, q, fm, d.out, d.stats)
	p := pool.New(d.opts.Threads, q, fm, w)

	fm.Acquire() // seeding credit: keeps Wait from firing before seeding completes

	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	for _, root := range roots {
		fm.Acquire()

		var scope *ignorescope.Handle
		if !d.opts.NoIgnore {
			if h, ok := d.opts.OpenScope(root); ok {
				scope = h
			}
		}

		q.PutHead(&queue.WorkItem{Path: root, Depth: 0, Scope: scope})
		if d.stats != nil {
			d.stats.RootSeeded()
		}
	}

	fm.Release() // seeding credit released: flagman now tracks only real work

	fm.Wait()

	for i := 0; i < d.opts.Threads; i++ {
		q.PutTail(nil)
	}

	<-done
}
