// ABOUTME: SetVariables / SetBounds: the two inbound streams from external
// ABOUTME: collaborators that drive cache retention and viewport (re)initialization

package state

import (
	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

// SetVariables replaces the selected-variable set (§6.2). Cache entries for
// variables no longer selected are dropped (§4.2 retain_variables).
func (e *Engine) SetVariables(vars []collab.SelectedVariable) {
	e.mu.Lock()
	e.variables = append([]collab.SelectedVariable(nil), vars...)
	e.bumpRevisionLocked()
	e.mu.Unlock()

	set := make(map[cache.VariableId]struct{}, len(vars))
	for _, v := range vars {
		set[v.Id] = struct{}{}
	}
	e.cacheStore.RetainVariables(set)

	e.refreshAndPublish()
	e.scheduleEvaluate()
}

// SetBounds applies a bounds change (§6.1). A nil bounds resets to the
// no-data default; the first non-nil bounds initializes the viewport to
// span the whole file (§8 scenario 2); later changes re-clamp preserving
// duration where possible (§7 "bounds shrink below viewport").
func (e *Engine) SetBounds(b *timeps.Bounds) {
	e.mu.Lock()
	if b == nil {
		e.bounds = nil
		e.resetToNoDataLocked()
		e.mu.Unlock()
		e.refreshAndPublish()
		e.scheduleEvaluate()
		e.scheduleConfigSave()
		return
	}

	first := e.bounds == nil
	e.bounds = b
	if first {
		vp, err := timeps.New(b.Start, b.End)
		if err != nil {
			vp = timeps.Viewport{Start: b.Start, End: b.Start.Add(1)}
		}
		e.viewport = vp
		e.cursor = vp.Center()
	} else {
		e.viewport = b.Clamp(e.viewport)
		e.cursor = clampToViewport(e.cursor, e.viewport)
	}
	e.enforceMinDurationLocked()
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// clampToViewport clamps t into [v.Start, v.End] (§8 "cursor containment").
func clampToViewport(t timeps.TimePs, v timeps.Viewport) timeps.TimePs {
	if t < v.Start {
		return v.Start
	}
	if t > v.End {
		return v.End
	}
	return t
}
