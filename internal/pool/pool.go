// Package pool implements the worker pool: N goroutines, each draining the
// priority queue until a terminator sentinel arrives.
package pool

import (
	"sync"

	"github.com/jchain/ff/internal/flagman"
	"github.com/jchain/ff/internal/ignorescope"
	"github.com/jchain/ff/internal/queue"
	"github.com/jchain/ff/internal/walker"
)

// Pool runs a fixed-size set of workers against a shared Queue and Flagman.
type Pool struct {
	n       int
	queue   *queue.Queue
	flagman *flagman.Flagman
	walker  *walker.Walker
}

// New creates a Pool of n workers.
func New(n int, q *queue.Queue, fm *flagman.Flagman, w *walker.Walker) *Pool {
	return &Pool{n: n, queue: q, flagman: fm, walker: w}
}

// Run starts all workers and blocks until every one of them has observed a
// terminator (nil WorkItem) and exited. The caller is responsible for
// injecting exactly n terminators onto the queue once the flagman reaches
// zero (internal/driver does this).
func (p *Pool) Run() {
	var wg sync.WaitGroup
	wg.Add(p.n)
	for i := 0; i < p.n; i++ {
		go func() {
			defer wg.Done()
			p.work()
		}()
	}
	wg.Wait()
}

// work is a single worker's main loop: pull an item, walk it if it isn't
// the terminator, release the ignore-scope it carried and the flagman
// credit it represents. Releasing the scope here is the Go analogue of
// message_body_free's free_shared(msg->repo) call (ff.c:81) — the scope
// handle's lifetime ends exactly when the worker finishes processing the
// WorkItem that carried it.
func (p *Pool) work() {
	for {
		item := p.queue.Get()
		if item == nil {
			return
		}
		p.walker.Walk(item)
		ignorescope.Release(item.Scope)
		p.flagman.Release()
	}
}
