// ABOUTME: Cursor keyboard step and jump-prev/jump-next (§4.4)
// ABOUTME: Jump traverses the union of all loaded transitions across visible variables

package state

import (
	"sort"

	"github.com/wavecore/timeline/internal/timeps"
)

// cursorStepFraction is the 4% step used for Q/E keyboard movement (§4.4).
const cursorStepFraction = 0.04

// shiftStepMultiplier amplifies Q/E cursor steps while Shift is held.
const shiftStepMultiplier = 4

// StepCursor moves the cursor by one keyboard step in dir (-1 left, +1
// right), clamped to the viewport (§4.4, §8 cursor containment).
func (e *Engine) StepCursor(dir int) {
	e.mu.Lock()
	step := cursorStep(e.viewport.Duration(), e.shiftHeld)
	e.cursor = applyStep(e.cursor, dir, step, e.viewport)
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

func cursorStep(duration timeps.TimePs, shift bool) timeps.TimePs {
	step := timeps.TimePs(uint64(float64(duration) * cursorStepFraction))
	if step < 1 {
		step = 1
	}
	if shift {
		return timeps.TimePs(uint64(step) * shiftStepMultiplier)
	}
	return step
}

func applyStep(cursor timeps.TimePs, dir int, step timeps.TimePs, v timeps.Viewport) timeps.TimePs {
	var next timeps.TimePs
	if dir < 0 {
		next = cursor.Sub(step)
	} else {
		next = cursor.Add(step)
	}
	return clampToViewport(next, v)
}

// JumpCursor moves the cursor to the nearest loaded transition strictly
// before (dir<0) or after (dir>0) the current cursor, across the union of
// all visible variables' cached buffers (§4.4, §9 Open Question #2).
// No-op if no such transition exists.
func (e *Engine) JumpCursor(dir int) {
	e.mu.Lock()
	times := e.loadedTransitionTimesLocked()
	cursorNs := e.cursor.ToNanosFloor()
	target, ok := nearestTransition(times, cursorNs, dir)
	if ok {
		e.cursor = clampToViewport(timeps.FromNanos(target), e.viewport)
		e.bumpRevisionLocked()
	}
	e.mu.Unlock()

	if !ok {
		return
	}
	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// loadedTransitionTimesLocked gathers the deduplicated, sorted union of
// every visible variable's cached transition times at the current LOD
// bucket. Caller holds e.mu.
func (e *Engine) loadedTransitionTimesLocked() []uint64 {
	bucket := e.currentBucketLocked()
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, v := range e.variables {
		data := e.seriesForLocked(v.Id, bucket)
		for _, t := range data.Transitions {
			if _, ok := seen[t.TimeNs]; ok {
				continue
			}
			seen[t.TimeNs] = struct{}{}
			out = append(out, t.TimeNs)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// nearestTransition finds the closest time strictly before/after at in a
// sorted slice, reporting false if none exists in that direction.
func nearestTransition(sorted []uint64, at uint64, dir int) (uint64, bool) {
	if dir < 0 {
		idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= at })
		if idx == 0 {
			return 0, false
		}
		return sorted[idx-1], true
	}
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] > at })
	if idx == len(sorted) {
		return 0, false
	}
	return sorted[idx], true
}
