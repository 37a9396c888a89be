// Package debounce collapses bursts of calls into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending invocation. Every Call resets the
// timer, so the last scheduled function runs once d has elapsed without
// another Call.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Call schedules fn, replacing whatever was pending.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// a Stop that lost the race with the timer firing leaves a stale
		// callback behind; only the latest generation may run
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		fn()
		d.mu.Lock()
		if gen == d.gen {
			d.timer = nil
		}
		d.mu.Unlock()
	})
}

// Cancel drops the pending invocation, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether an invocation is scheduled or still running.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Func wraps fn so that repeated calls of the returned function only run fn
// once, delay after the last call. Nothing is returned from fn.
func Func(fn func(), delay time.Duration) func() {
	d := New(delay)
	return func() {
		d.Call(fn)
	}
}
