// ABOUTME: Zoom algebra, pan, and reset-zoom (§4.4)
// ABOUTME: Zoom preserves the anchor's pixel offset within the viewport

package state

import "github.com/wavecore/timeline/internal/timeps"

const (
	zoomInFactor       = 0.7
	zoomInFactorShift  = 0.4
	zoomOutFactor      = 1.3
	zoomOutFactorShift = 1.8
	panFraction        = 0.2 // duration/5
	panShiftMultiplier = 3
)

// ZoomIn zooms in around the current viewport center (keyboard `W`, §4.6).
func (e *Engine) ZoomIn() { e.zoomAroundViewportCenter(true) }

// ZoomOut zooms out around the current viewport center (keyboard `S`, §4.6).
func (e *Engine) ZoomOut() { e.zoomAroundViewportCenter(false) }

func (e *Engine) zoomAroundViewportCenter(in bool) {
	e.mu.Lock()
	anchor := e.viewport.Center()
	e.zoomLocked(anchor, in)
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// ZoomAt zooms around an explicit anchor (e.g. a pointer position mapped to
// time), used by pointer-driven zoom gestures (§4.4 zoom algebra).
func (e *Engine) ZoomAt(anchor timeps.TimePs, in bool) {
	e.mu.Lock()
	e.zoomLocked(anchor, in)
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// zoomLocked implements the anchor-preserving zoom step (§4.4 "zoom
// algebra"). Caller holds e.mu.
func (e *Engine) zoomLocked(anchor timeps.TimePs, in bool) {
	duration := e.viewport.Duration()
	if duration == 0 {
		return
	}
	ratio := anchorRatio(anchor, e.viewport)
	factor := zoomFactor(in, e.shiftHeld)
	newDuration := scaleDuration(duration, factor)

	minDur := timeps.MinDurationForWidth(e.canvasW)
	maxDur := minDur
	if e.bounds != nil {
		maxDur = e.bounds.Duration()
		if maxDur < minDur {
			maxDur = minDur
		}
	} else {
		maxDur = timeps.Max
	}
	if newDuration < minDur {
		newDuration = minDur
	}
	if newDuration > maxDur {
		newDuration = maxDur
	}

	start := placeAnchor(anchor, ratio, newDuration)
	end := start.Add(newDuration)

	vp, err := timeps.New(start, end)
	if err != nil {
		vp = e.viewport
	}
	if e.bounds != nil {
		vp = e.bounds.Clamp(vp)
	}
	e.viewport = vp
	e.cursor = clampToViewport(e.cursor, e.viewport)
}

// anchorRatio computes r = (anchor-start)/duration, clamped to [0,1] so an
// anchor outside the viewport still produces a sane edge placement.
func anchorRatio(anchor timeps.TimePs, v timeps.Viewport) float64 {
	duration := v.Duration()
	if duration == 0 || anchor <= v.Start {
		return 0
	}
	r := float64(uint64(anchor.Sub(v.Start))) / float64(uint64(duration))
	if r > 1 {
		r = 1
	}
	return r
}

func zoomFactor(in, shift bool) float64 {
	switch {
	case in && shift:
		return zoomInFactorShift
	case in:
		return zoomInFactor
	case shift:
		return zoomOutFactorShift
	default:
		return zoomOutFactor
	}
}

func scaleDuration(d timeps.TimePs, factor float64) timeps.TimePs {
	v := uint64(float64(d) * factor)
	if v < 1 {
		v = 1
	}
	return timeps.TimePs(v)
}

// placeAnchor returns new_start such that new_start + r*new_duration = anchor.
func placeAnchor(anchor timeps.TimePs, r float64, newDuration timeps.TimePs) timeps.TimePs {
	offset := timeps.TimePs(uint64(r * float64(newDuration)))
	if offset > anchor {
		return 0
	}
	return anchor.Sub(offset)
}

// Pan shifts the viewport by one step in dir (-1 left, +1 right), clamped
// to bounds; a no-op at the edge (§4.4, §8 boundary behavior).
func (e *Engine) Pan(dir int) {
	e.mu.Lock()
	step := panStep(e.viewport.Duration(), e.shiftHeld)
	var start, end timeps.TimePs
	if dir < 0 {
		start = e.viewport.Start.Sub(step)
		end = start.Add(e.viewport.Duration())
	} else {
		end = e.viewport.End.Add(step)
		start = end.Sub(e.viewport.Duration())
	}
	vp, err := timeps.New(start, end)
	if err == nil {
		if e.bounds != nil {
			vp = e.bounds.Clamp(vp)
		}
		e.viewport = vp
		e.cursor = clampToViewport(e.cursor, e.viewport)
		e.bumpRevisionLocked()
	}
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

func panStep(duration timeps.TimePs, shift bool) timeps.TimePs {
	step := timeps.TimePs(uint64(float64(duration) * panFraction))
	if step < 1 {
		step = 1
	}
	if shift {
		return timeps.TimePs(uint64(step) * panShiftMultiplier)
	}
	return step
}

// ResetZoom restores viewport=bounds, cursor=midpoint(bounds), zoom-center=0
// (`R` key, §4.4). With no bounds known, restores the §6.1 no-data default.
func (e *Engine) ResetZoom() {
	e.mu.Lock()
	if e.bounds != nil {
		vp, err := timeps.New(e.bounds.Start, e.bounds.End)
		if err != nil {
			vp = timeps.Viewport{Start: e.bounds.Start, End: e.bounds.Start.Add(1)}
		}
		e.viewport = vp
		e.cursor = vp.Center()
	} else {
		e.viewport = timeps.Viewport{Start: 0, End: defaultViewportEnd}
		e.cursor = e.viewport.Center()
	}
	e.zoomCenter = 0
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.zoomRate.Reset()
	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// ResetZoomCenter returns the zoom-center anchor to time 0 and clears the
// follow-mouse rate limiter's coalesced state (`Z` key, §4.4).
func (e *Engine) ResetZoomCenter() {
	e.mu.Lock()
	e.zoomCenter = 0
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.zoomRate.Reset()
	e.refreshAndPublish()
	e.scheduleConfigSave()
}

// FollowZoomCenter feeds a pointer-driven zoom-center anchor through the
// 60 Hz rate limiter (§4.3 ZOOM_CENTER_MIN_INTERVAL_MS).
func (e *Engine) FollowZoomCenter(anchor timeps.TimePs) {
	e.zoomRate.Follow(anchor)
}

// applyZoomCenter is the rate limiter's fire callback; it must not be
// called while e.mu is held.
func (e *Engine) applyZoomCenter(anchor timeps.TimePs) {
	e.mu.Lock()
	e.zoomCenter = anchor
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleConfigSave()
}
