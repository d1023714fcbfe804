// ABOUTME: Builds RenderParameters snapshots and drives the Request Coordinator
// ABOUTME: Viewport, cursor, canvas and variable-set mutations call scheduleEvaluate, which debounces into C3 (§2)

package state

import (
	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/coordinator"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/timeps"
)

// scheduleEvaluate snapshots the inputs C3 needs and hands them to the
// debounced Coordinator (§4.3). Called after every viewport, cursor,
// canvas, or variable-set mutation.
func (e *Engine) scheduleEvaluate() {
	e.mu.Lock()
	startNs, endNs := e.viewport.RangeNs()
	input := coordinator.EvalInput{
		Viewport:      cache.Range{Start: startNs, End: endNs},
		Bucket:        e.currentBucketLocked(),
		CanvasWidthPx: e.canvasW,
		Variables:     append([]collab.SelectedVariable(nil), e.variables...),
		Bounds:        e.bounds,
		CursorNs:      e.cursor.ToNanosFloor(),
	}
	e.mu.Unlock()
	e.coordinator.ScheduleEvaluate(input)
}

func (e *Engine) currentBucketLocked() timeps.LODBucket {
	return timeps.BucketFor(e.viewport.TimePerPixel(e.canvasW))
}

// onCoordinatorSettled runs after every coordinator response (success or
// error), whether or not it mutated anything: refresh derived values, check
// reload-restore eligibility (§4.3 response handling).
func (e *Engine) onCoordinatorSettled() {
	e.mu.Lock()
	restored := e.maybeRestoreReloadLocked()
	e.mu.Unlock()
	_ = restored
	e.refreshAndPublish()
}

// buildParametersLocked assembles the outward RenderParameters snapshot
// from current state and cache contents. Caller holds e.mu.
func (e *Engine) buildParametersLocked() render.Parameters {
	bucket := e.currentBucketLocked()
	vars := make([]render.VariableRenderSnapshot, 0, len(e.variables))
	for _, sv := range e.variables {
		data := e.seriesForLocked(sv.Id, bucket)
		vars = append(vars, render.VariableRenderSnapshot{
			Id:          sv.Id,
			Label:       sv.Id.Variable,
			Formatter:   sv.Formatter,
			Transitions: data,
			CursorValue: e.cursorValueForLocked(sv.Id, data),
		})
	}
	return render.Parameters{
		Viewport:   e.viewport,
		Cursor:     e.cursor,
		ZoomCenter: e.zoomCenter,
		CanvasW:    e.canvasW,
		CanvasH:    e.canvasH,
		Theme:      e.theme,
		Variables:  vars,
		Revision:   e.revision,
	}
}

// seriesForLocked returns the best-effort cached buffer for id at bucket,
// or an empty buffer when nothing is cached yet.
func (e *Engine) seriesForLocked(id cache.VariableId, bucket timeps.LODBucket) cache.VariableSeriesData {
	entry, ok := e.cacheStore.AnyEntry(id, bucket)
	if !ok {
		return cache.VariableSeriesData{}
	}
	return entry.Data
}

// cursorValueForLocked combines the cached buffer lookup with the
// coordinator's Loading/Missing flags and reload state (§4.4 "Refreshing
// cursor values").
func (e *Engine) cursorValueForLocked(id cache.VariableId, data cache.VariableSeriesData) cache.SignalValue {
	if e.reloadingFiles[id.FilePath] {
		return cache.Loading()
	}
	if e.coordinator.ForcedMissing(id) {
		return cache.Missing()
	}
	if len(data.Transitions) == 0 {
		if e.coordinator.LoadingArmed(id) {
			return cache.Loading()
		}
		return cache.Missing()
	}
	return data.ValueAtOrBefore(e.cursor.ToNanosFloor())
}
