// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"sync"
	"sync/atomic"
)

// Indeterminate is the total unit count of a Progress whose total
// amount of work is not known.
const Indeterminate int64 = -1

// A Progress tracks the amount of work completed against a total,
// where the total may be Indeterminate.
//
// A Descriptor only allocates a Progress if asked to. After that the
// Progress is owned by the Descriptor but written by whoever is
// dispatching it (for example httpreq.Dispatcher, which counts response
// body bytes). All methods are safe for concurrent use by multiple
// goroutines without external synchronization. Readers see each
// counter atomically, but a Completed value and a Total value read by
// two separate calls are not guaranteed to be a consistent pair.
//
// A Progress tracks one dispatch at a time. Concurrent dispatches of the
// same Descriptor share its Progress, each resetting it and adding to it,
// so their counts interleave and mean nothing. Keep at most one
// dispatch of a progress-tracked Descriptor in flight.
//
// A Progress also acts as a cancellation handle for the dispatch it
// tracks. Calling Cancel closes the Done channel, and a dispatcher
// watching Done aborts the in-flight request.
type Progress struct {
	completed atomic.Int64
	total     atomic.Int64

	cancelOnce sync.Once
	doneOnce   sync.Once
	done       chan struct{}
}

// NewProgress returns a Progress with the given total unit count. Pass
// Indeterminate if the total is unknown.
func NewProgress(total int64) *Progress {
	p := &Progress{}
	p.SetTotal(total)
	return p
}

// Completed returns the number of units of work completed.
func (p *Progress) Completed() int64 {
	return p.completed.Load()
}

// Total returns the total number of units of work, or Indeterminate.
func (p *Progress) Total() int64 {
	return p.total.Load()
}

// Indeterminate indicates whether the total amount of work is unknown.
func (p *Progress) Indeterminate() bool {
	return p.Total() < 0
}

// SetTotal sets the total unit count. Any negative value is stored as
// Indeterminate.
func (p *Progress) SetTotal(n int64) {
	if n < 0 {
		n = Indeterminate
	}
	p.total.Store(n)
}

// SetCompleted sets the completed unit count.
func (p *Progress) SetCompleted(n int64) {
	p.completed.Store(n)
}

// Add adds n to the completed unit count and returns the new count.
func (p *Progress) Add(n int64) int64 {
	return p.completed.Add(n)
}

// Fraction returns the completed fraction of the total work, clamped to
// [0, 1]. If the total is Indeterminate, Fraction returns -1. A zero
// total counts as fully complete.
func (p *Progress) Fraction() float64 {
	total := p.Total()
	if total < 0 {
		return -1
	}
	if total == 0 {
		return 1
	}
	f := float64(p.Completed()) / float64(total)
	if f > 1 {
		f = 1
	}
	return f
}

// Finished indicates whether the total is known and the completed count
// has reached it.
func (p *Progress) Finished() bool {
	total := p.Total()
	return total >= 0 && p.Completed() >= total
}

// Cancel marks the tracked work as cancelled and closes the Done
// channel. Calling Cancel more than once has no further effect.
func (p *Progress) Cancel() {
	p.cancelOnce.Do(func() {
		close(p.doneChan())
	})
}

// Cancelled indicates whether Cancel has been called.
func (p *Progress) Cancelled() bool {
	select {
	case <-p.doneChan():
		return true
	default:
		return false
	}
}

// Done returns a channel which is closed when Cancel is called.
func (p *Progress) Done() <-chan struct{} {
	return p.doneChan()
}

func (p *Progress) doneChan() chan struct{} {
	p.doneOnce.Do(func() {
		p.done = make(chan struct{})
	})
	return p.done
}
