package editor

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet window before a scheduled pipeline run fires.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer is a single-slot pending-task register.
//
// Trigger replaces any pending task and restarts the quiet window; only the
// most recent task runs once the window elapses. Each trigger bumps a
// generation counter, and a timer whose generation is stale when it fires
// does nothing, so a superseded task never runs even if its timer could not
// be stopped in time.
//
// Tasks never overlap: a task that becomes due while another is still
// running waits for it to finish.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	idle    *sync.Cond // signalled on mu when running drops
	timer   *time.Timer
	pending func()
	gen     uint64
	running int
	stopped bool

	run sync.Mutex
}

// NewDebouncer creates a debouncer with the given quiet window. A
// non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	d := &Debouncer{delay: delay}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Delay returns the quiet window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn, cancelling any task that has not run yet.
// It is a no-op after Stop.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	d.pending = fn
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending task immediately, if there is one, and reports
// whether it ran a task. With nothing pending it still waits for a task whose
// window already elapsed, so the caller always observes its result.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.cancelLocked()
	if fn == nil {
		for d.running > 0 {
			d.idle.Wait()
		}
		d.mu.Unlock()
		return false
	}
	d.running++
	d.mu.Unlock()

	d.exec(fn)
	return true
}

// Cancel drops the pending task without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.mu.Unlock()
}

// Pending reports whether a task is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels the pending task and makes further triggers no-ops. It waits
// for a task that is already running to finish.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	// Wait for an in-flight task.
	d.run.Lock()
	defer d.run.Unlock()
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.running++
	d.mu.Unlock()

	d.exec(fn)
}

// exec runs fn, which the caller has already counted in running.
func (d *Debouncer) exec(fn func()) {
	d.run.Lock()
	defer func() {
		d.run.Unlock()
		d.mu.Lock()
		d.running--
		d.idle.Broadcast()
		d.mu.Unlock()
	}()
	fn()
}
