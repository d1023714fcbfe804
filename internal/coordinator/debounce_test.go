package coordinator

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (coalesced)", got)
	}
}

func TestDebouncerCancelPreventsCallback(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0 after cancel", got)
	}
}

func TestDeadlineCancelPreventsCallback(t *testing.T) {
	t.Parallel()
	var fired atomic.Bool
	dl := After(20*time.Millisecond, func() { fired.Store(true) })
	dl.Cancel()

	time.Sleep(60 * time.Millisecond)
	if fired.Load() {
		t.Error("expected canceled deadline to never fire")
	}
}

func TestDeadlineFiresWhenNotCanceled(t *testing.T) {
	t.Parallel()
	var fired atomic.Bool
	After(10*time.Millisecond, func() { fired.Store(true) })

	time.Sleep(50 * time.Millisecond)
	if !fired.Load() {
		t.Error("expected deadline to fire")
	}
}
