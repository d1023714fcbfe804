package timeps

import "fmt"

// Viewport is the time interval currently mapped onto the canvas width.
// Invariant: End > Start (enforced by New; zero-width requests are rejected).
type Viewport struct {
	Start TimePs
	End   TimePs
}

// New constructs a Viewport, requiring End > Start (§4.1).
func New(start, end TimePs) (Viewport, error) {
	if end <= start {
		return Viewport{}, fmt.Errorf("timeps: viewport end %d must be greater than start %d", end, start)
	}
	return Viewport{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (v Viewport) Duration() TimePs {
	return v.End.Sub(v.Start)
}

// Center returns Start + Duration/2.
func (v Viewport) Center() TimePs {
	return v.Start.Add(TimePs(uint64(v.Duration()) / 2))
}

// TimePerPixel returns the viewport's time-per-pixel for the given canvas width.
func (v Viewport) TimePerPixel(canvasWidthPx int) TimePerPixel {
	return FromDurationAndWidth(v.Duration(), canvasWidthPx)
}

// Contains reports whether t falls within [Start, End].
func (v Viewport) Contains(t TimePs) bool {
	return t >= v.Start && t <= v.End
}

// RangeNs returns the half-open [start_ns, end_ns) nanosecond range used for
// wire calls: floor on the start, ceil on the end (§4.1), so the returned
// interval fully covers the half-open picosecond interval [Start, End).
func (v Viewport) RangeNs() (startNs, endNs uint64) {
	return v.Start.ToNanosFloor(), v.End.ToNanosCeil()
}

// Bounds is the union of selected variables' files' time extents.
type Bounds struct {
	Start TimePs
	End   TimePs
}

// Duration returns End - Start.
func (b Bounds) Duration() TimePs {
	return b.End.Sub(b.Start)
}

// Clamp returns v re-clamped into b, preserving duration when possible
// (§7 "Bounds shrink below viewport"). If the clamped viewport would
// collapse, a minimal 1-ps interval near the clamp point is returned.
func (b Bounds) Clamp(v Viewport) Viewport {
	start, end := v.Start, v.End
	if start < b.Start {
		shift := b.Start.Sub(start)
		start = b.Start
		end = end.Add(shift)
	}
	if end > b.End {
		shift := end.Sub(b.End)
		end = b.End
		if shift > start.Sub(b.Start) {
			start = b.Start
		} else {
			start = start.Sub(shift)
		}
	}
	if start < b.Start {
		start = b.Start
	}
	if end > b.End {
		end = b.End
	}
	if end <= start {
		end = start.Add(1)
		if end > b.End {
			end = b.End
			if start >= end {
				start = end.Sub(1)
			}
		}
	}
	out, err := New(start, end)
	if err != nil {
		// Bounds themselves are degenerate (End<=Start); fall back to a
		// 1-ps interval at the bounds start rather than panic.
		return Viewport{Start: b.Start, End: b.Start.Add(1)}
	}
	return out
}
