package lookup

import (
	"sync"
	"time"
)

// DefaultDebounce is how long to wait after the last keystroke before
// hitting the upstream API.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer collapses a burst of calls into one, invoking only the last
// function scheduled once the quiet period elapses. Each scheduled call
// also gets a staleness check so slow lookups that complete after a newer
// one was scheduled can discard their own results instead of clobbering
// fresher ones.
type Debouncer struct {
	mu         sync.Mutex
	timer      *time.Timer
	delay      time.Duration
	generation uint64
}

// NewDebouncer creates a Debouncer with the given quiet period.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, replacing any pending
// call. fn receives a stale func; once fn's (possibly slow) work
// finishes, it should check stale() and drop its results if a newer call
// has been scheduled since.
func (d *Debouncer) Do(fn func(stale func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	gen := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		fn(func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()
			return gen != d.generation
		})
	})
}

// Cancel drops any pending call and invalidates in-flight staleness checks.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
