// ABOUTME: Per-variable circuit breaker and empty-response TTL cache (§4.3)
// ABOUTME: Independent OR gates: either skip suppresses the request

package coordinator

import "time"

const (
	// emptyStreakThreshold is the consecutive-empty-response count that
	// trips the breaker (§4.3 "after 3 empties").
	emptyStreakThreshold = 3

	breakerInitialBackoff = 500 * time.Millisecond
	breakerMaxBackoff     = 5 * time.Second

	// emptyResultTTL coalesces retries across the UI independently of the
	// breaker (§4.3 "cache the fact of emptiness for 5s").
	emptyResultTTL = 5 * time.Second
)

// breakerState tracks one variable's empty-response streak and backoff.
type breakerState struct {
	emptyStreak  int
	backoff      time.Duration
	suppressedAt time.Time // zero if not currently suppressed
}

// shouldSkip reports whether requests for this variable should be skipped
// at time now, per the circuit breaker alone.
func (b *breakerState) shouldSkip(now time.Time) bool {
	if b.emptyStreak < emptyStreakThreshold {
		return false
	}
	if b.suppressedAt.IsZero() {
		return false
	}
	return now.Before(b.suppressedAt.Add(b.backoff))
}

// recordEmpty registers an empty response, arming the breaker once the
// streak threshold is crossed and doubling backoff on repeat trips.
func (b *breakerState) recordEmpty(now time.Time) {
	b.emptyStreak++
	if b.emptyStreak < emptyStreakThreshold {
		return
	}
	if b.suppressedAt.IsZero() {
		b.backoff = breakerInitialBackoff
	} else if !now.Before(b.suppressedAt.Add(b.backoff)) {
		// Previous suppression window elapsed before this new empty arrived:
		// double the backoff, capped at the ceiling.
		b.backoff *= 2
		if b.backoff > breakerMaxBackoff {
			b.backoff = breakerMaxBackoff
		}
	}
	b.suppressedAt = now
}

// recordSuccess resets the breaker on any non-empty response (§4.3).
func (b *breakerState) recordSuccess() {
	b.emptyStreak = 0
	b.backoff = 0
	b.suppressedAt = time.Time{}
}
