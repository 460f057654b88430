// Package flagman implements the outstanding-work counter ("flagman") used
// to detect quiescence of the traversal's work-generating pipeline.
//
// A plain sync.WaitGroup can't serve this role: the Driver needs to hold a
// single virtual "seeding in progress" credit across the entire root-seeding
// phase so that Wait cannot observe a momentarily-empty queue and return
// before the first root's children have even been discovered. A WaitGroup's
// Add/Done pair doesn't make that seeding-credit pattern explicit the way a
// dedicated acquire/release/wait counter does.
package flagman

import "sync"

// Flagman is a non-negative counter supporting acquire (increment), release
// (decrement, panicking if it would go negative), and wait (block until the
// counter reaches zero).
type Flagman struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

// New creates a Flagman with an initial count of zero.
func New() *Flagman {
	f := &Flagman{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Acquire increments the outstanding-work count.
func (f *Flagman) Acquire() {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
}

// Release decrements the outstanding-work count and wakes any Wait callers
// if it reaches zero. Calling Release without a matching prior Acquire is a
// programming error and panics rather than letting the counter go negative.
func (f *Flagman) Release() {
	f.mu.Lock()
	f.count--
	if f.count < 0 {
		f.mu.Unlock()
		panic("flagman: release without matching acquire")
	}
	if f.count == 0 {
		f.cond.Broadcast()
	}
	f.mu.Unlock()
}

// Wait blocks until the outstanding-work count reaches zero.
func (f *Flagman) Wait() {
	f.mu.Lock()
	for f.count != 0 {
		f.cond.Wait()
	}
	f.mu.Unlock()
}
