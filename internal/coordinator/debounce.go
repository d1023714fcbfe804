// ABOUTME: Scoped, cancelable debounce/rate-limit timers (§4.3 tunables, §5, §9)
// ABOUTME: Canceling a handle must prevent its callback from firing afterward

package coordinator

import (
	"sync"
	"time"
)

// Tunables (§4.3).
const (
	RequestDebounce       = 75 * time.Millisecond
	CursorLoadingDelay    = 500 * time.Millisecond
	ConfigSaveDebounce    = 1000 * time.Millisecond
	ZoomCenterMinInterval = 16 * time.Millisecond
)

// Debouncer coalesces bursts of Trigger calls into a single fn invocation
// after the quiet period elapses. Each Trigger restarts the window.
// Canceling (explicitly, or via a new Trigger) prevents a stale callback
// from firing — §9 "canceling the handle must prevent its callback".
type Debouncer struct {
	mu    sync.Mutex
	dur   time.Duration
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(dur time.Duration) *Debouncer {
	return &Debouncer{dur: dur}
}

// Trigger (re)starts the debounce window; fn runs once it elapses without
// a further Trigger/Cancel.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.dur, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel stops any pending callback without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
}

// Deadline schedules fn to run once after dur unless canceled before then —
// used for the 500ms deferred "Loading" indicator and similar one-shot
// timers that are not coalesced, merely cancelable.
type Deadline struct {
	mu    sync.Mutex
	timer *time.Timer
	live  bool
}

// After schedules fn after dur.
func After(dur time.Duration, fn func()) *Deadline {
	dl := &Deadline{live: true}
	dl.timer = time.AfterFunc(dur, func() {
		dl.mu.Lock()
		live := dl.live
		dl.mu.Unlock()
		if live {
			fn()
		}
	})
	return dl
}

// Cancel prevents fn from firing if it has not already.
func (dl *Deadline) Cancel() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.live = false
	if dl.timer != nil {
		dl.timer.Stop()
	}
}
