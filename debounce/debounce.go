// Package debounce delays a handler until a burst of triggers has been quiet
// for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn once the delay has passed since the last Trigger
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	clock   Clock
	fn      func()
	timer   Timer
	gen     uint64
	stopped bool
}

// New creates a debouncer. A nil clock uses the wall clock.
func New(delay time.Duration, clock Clock, fn func()) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{
		delay: delay,
		clock: clock,
		fn:    fn,
	}
}

// Trigger cancels any armed timer and arms a new one
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs fn unless a later Trigger or Stop superseded this timer
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Pending reports whether a timer is armed
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the armed timer; later Triggers are ignored
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
