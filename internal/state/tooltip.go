// ABOUTME: Hover tracking and TooltipData computation (§4.4)
// ABOUTME: Recomputed on hover, viewport change, or any render-snapshot refresh

package state

import (
	"strings"

	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/timeps"
)

// belowAlignmentThreshold flips the tooltip to render below the cursor
// when the hover point is this close to the top edge (§4.4).
const belowAlignmentThreshold = 0.2

// HoverAt records a normalized [0,1]x[0,1] pointer position and recomputes
// the tooltip (§4.4).
func (e *Engine) HoverAt(nx, ny float64) {
	e.mu.Lock()
	e.hoverActive = true
	e.hoverX, e.hoverY = clamp01(nx), clamp01(ny)
	e.mu.Unlock()
	e.recomputeTooltip()
}

// ClearHover ends hover tracking; the tooltip observable emits nil.
func (e *Engine) ClearHover() {
	e.mu.Lock()
	e.hoverActive = false
	e.tooltip = nil
	e.mu.Unlock()
	e.publishTooltip()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// recomputeTooltip rebuilds the tooltip from the live hover point and
// current state, then publishes it.
func (e *Engine) recomputeTooltip() {
	e.mu.Lock()
	if !e.hoverActive || !e.tooltipEnabled || len(e.variables) == 0 {
		e.tooltip = nil
		e.mu.Unlock()
		e.publishTooltip()
		return
	}

	n := len(e.variables)
	rowIndex := int(e.hoverY * float64(n+1))
	if rowIndex >= n {
		// last slot is the time-axis row: suppress the tooltip (§4.4).
		e.tooltip = nil
		e.mu.Unlock()
		e.publishTooltip()
		return
	}

	sv := e.variables[rowIndex]
	duration := e.viewport.Duration()
	at := e.viewport.Start.Add(timeps.TimePs(uint64(e.hoverX * float64(duration))))
	bucket := e.currentBucketLocked()
	data := e.seriesForLocked(sv.Id, bucket)
	value := data.ValueAtOrBefore(at.ToNanosFloor())

	align := render.AlignAbove
	if e.hoverY < belowAlignmentThreshold {
		align = render.AlignBelow
	}

	raw, _ := value.IsPresent()
	td := &render.TooltipData{
		VariableLabel:      sv.Id.Variable,
		VariableId:         sv.Id,
		Time:               at.ToNanosFloor(),
		FormattedValue:     render.FormatSegmentValue(raw),
		RawValue:           raw,
		EducationalMessage: educationalMessage(raw),
		ScreenX:            e.hoverX,
		ScreenY:            e.hoverY,
		VerticalAlignment:  align,
	}
	e.tooltip = td
	e.mu.Unlock()
	e.publishTooltip()
}

// educationalMessage attaches a beginner-facing explanation for the
// special raw values Z/X/U (case-insensitive); N/A renders with none
// (§4.5 "signal state classification", §8 boundary behavior).
func educationalMessage(raw string) string {
	switch strings.ToUpper(raw) {
	case "Z":
		return "High impedance: the driver has released this net (tri-stated)."
	case "X":
		return "Unknown: simulation could not resolve a deterministic value here."
	case "U":
		return "Uninitialized: this signal has not been driven since reset."
	default:
		return ""
	}
}

func (e *Engine) publishTooltip() {
	e.mu.Lock()
	td := e.tooltip
	e.mu.Unlock()
	e.tooltipBus.Publish(td)
}
