// ABOUTME: zoomCenterLimiter throttles pointer-driven zoom-center follow events
// ABOUTME: Leading-edge fire when the interval has elapsed, trailing-edge otherwise (§9)

package state

import (
	"sync"
	"time"

	"github.com/wavecore/timeline/internal/timeps"
)

// zoomCenterLimiter coalesces Follow calls to at most one fire per
// interval. If the interval has already elapsed since the last fire
// (including before the first ever fire), the call fires immediately —
// per §9's resolution of the gesture-start ambiguity. Otherwise the latest
// anchor is remembered and fired once by a trailing timer.
type zoomCenterLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	fire     func(timeps.TimePs)

	lastFire    time.Time
	havePending bool
	pending     timeps.TimePs
	timer       *time.Timer
}

func newZoomCenterLimiter(interval time.Duration, fire func(timeps.TimePs)) *zoomCenterLimiter {
	return &zoomCenterLimiter{interval: interval, fire: fire}
}

// Follow submits a new anchor. Must not be called while the owning
// Engine's mutex is held, since a leading-edge fire calls back into the
// Engine synchronously.
func (z *zoomCenterLimiter) Follow(anchor timeps.TimePs) {
	z.mu.Lock()
	now := time.Now()
	if z.lastFire.IsZero() || now.Sub(z.lastFire) >= z.interval {
		z.lastFire = now
		z.havePending = false
		if z.timer != nil {
			z.timer.Stop()
			z.timer = nil
		}
		z.mu.Unlock()
		z.fire(anchor)
		return
	}

	z.pending = anchor
	z.havePending = true
	if z.timer == nil {
		remaining := z.interval - now.Sub(z.lastFire)
		z.timer = time.AfterFunc(remaining, z.trailingFire)
	}
	z.mu.Unlock()
}

func (z *zoomCenterLimiter) trailingFire() {
	z.mu.Lock()
	if !z.havePending {
		z.mu.Unlock()
		return
	}
	anchor := z.pending
	z.havePending = false
	z.lastFire = time.Now()
	z.timer = nil
	z.mu.Unlock()
	z.fire(anchor)
}

// Reset clears coalesced state and the elapsed-interval memory, so the
// next Follow call fires immediately (§4.4 "Reset ... clears ratio memory").
func (z *zoomCenterLimiter) Reset() {
	z.mu.Lock()
	if z.timer != nil {
		z.timer.Stop()
		z.timer = nil
	}
	z.havePending = false
	z.lastFire = time.Time{}
	z.mu.Unlock()
}
