// ABOUTME: Read-only snapshot accessors used by C6 input handling and tests
// ABOUTME: None of these trigger a mutation or a publish

package state

import (
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/timeps"
)

// Snapshot returns the current RenderParameters without waiting for the
// next publish.
func (e *Engine) Snapshot() render.Parameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buildParametersLocked()
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() timeps.Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// Cursor returns the current cursor time.
func (e *Engine) Cursor() timeps.TimePs {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// ZoomCenter returns the current zoom-center anchor.
func (e *Engine) ZoomCenter() timeps.TimePs {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoomCenter
}

// ShiftHeld reports the live shift-modifier state.
func (e *Engine) ShiftHeld() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shiftHeld
}

// TooltipEnabled reports whether the tooltip feature is on.
func (e *Engine) TooltipEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tooltipEnabled
}

// CanvasSize returns the current canvas dimensions.
func (e *Engine) CanvasSize() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvasW, e.canvasH
}
