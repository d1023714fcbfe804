// ABOUTME: RestoreConfig sanitizes and applies a persisted TimelineConfig (§4.4)
// ABOUTME: Invalid/inverted persisted ranges are clamped to a minimal valid interval

package state

import (
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

// RestoreConfig applies a persisted config snapshot, sanitizing the range
// against current bounds before setting viewport/cursor/zoom-center and
// latching configRestored (§4.4 "Config restore", §7 "non-finite or
// inverted persisted range").
func (e *Engine) RestoreConfig(cfg collab.PersistedConfig) {
	e.mu.Lock()
	if cfg.VisibleRange != nil {
		vp := sanitizeRange(*cfg.VisibleRange, e.bounds)
		e.viewport = vp
	}
	e.enforceMinDurationLocked()

	if cfg.CursorPosition != nil {
		e.cursor = clampToViewport(*cfg.CursorPosition, e.viewport)
	} else {
		e.cursor = e.viewport.Start
	}
	if cfg.ZoomCenter != nil {
		e.zoomCenter = *cfg.ZoomCenter
	}
	e.tooltipEnabled = cfg.TooltipEnabled
	e.configRestored = true
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
}

// sanitizeRange clamps a persisted range against bounds, falling back to a
// minimal valid 1-ps interval near the clamp point if the range collapses
// or is inverted (§7).
func sanitizeRange(r collab.RangePs, bounds *timeps.Bounds) timeps.Viewport {
	start, end := r.Start, r.End
	if end <= start {
		end = start.Add(1)
	}
	vp, err := timeps.New(start, end)
	if err != nil {
		vp = timeps.Viewport{Start: 0, End: defaultViewportEnd}
	}
	if bounds != nil {
		vp = bounds.Clamp(vp)
	}
	return vp
}

// ConfigRestored reports whether a RestoreConfig call has ever landed,
// i.e. the config-restored latch (§4.4).
func (e *Engine) ConfigRestored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.configRestored
}
