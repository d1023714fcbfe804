// ABOUTME: Renderer (C5): Parameters -> draw object list, static layer reused by
// ABOUTME: StaticRenderKey (§3), overlays rebuilt every frame (cursor, zoom center)

package render

import (
	"sync"
)

const (
	minRowHeightPx   = 14
	rowLabelWidthPx  = 96
	cursorLineWidth  = 3
	zoomCenterWidth  = 2
)

// Renderer holds the differential static-layer cache described by §3's
// StaticRenderKey: a frame whose key matches the previous one reuses the
// previous static draw objects instead of rebuilding rows/segments/axis
// ticks, the same differential-render trick the host TUI layer uses for
// whole screen lines.
type Renderer struct {
	mu          sync.Mutex
	key         StaticRenderKey
	static      []DrawObject
	haveStatic  bool
}

// New constructs an empty Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render produces the full draw object list for p: the cached static layer
// (rows, segments, axis) followed by freshly computed overlays (cursor,
// zoom center) (§4.5).
func (r *Renderer) Render(p Parameters) []DrawObject {
	key := p.Key()

	r.mu.Lock()
	if !r.haveStatic || r.key != key {
		r.static = buildStaticLayer(p)
		r.key = key
		r.haveStatic = true
	}
	static := r.static
	r.mu.Unlock()

	out := make([]DrawObject, 0, len(static)+8)
	out = append(out, static...)
	out = append(out, buildOverlayLayer(p)...)
	return out
}

// Invalidate drops the cached static layer, forcing a full rebuild on the
// next Render call.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.haveStatic = false
	r.mu.Unlock()
}

func buildStaticLayer(p Parameters) []DrawObject {
	if p.CanvasW <= 0 || p.CanvasH <= 0 {
		return nil
	}
	n := len(p.Variables)
	if n == 0 {
		return buildAxisOnly(p)
	}

	axisH := axisHeightPx(p.CanvasH, n)
	rowH := float64(p.CanvasH-axisH) / float64(n)
	startNs, endNs := p.Viewport.RangeNs()

	var out []DrawObject
	for i, v := range p.Variables {
		y0 := float64(i) * rowH
		out = append(out, Rect{X: 0, Y: y0, W: float64(p.CanvasW), H: rowH, Color: p.Theme.RowBg(i)})
		out = append(out, rasterizeRow(v.Transitions, startNs, endNs, p.CanvasW, y0, rowH, p.Theme, 0)...)
		if v.Label != "" {
			out = append(out, Text{X: 4, Y: y0 + rowH/2, Value: TruncateLabel(v.Label, rowLabelWidthPx/7), Color: p.Theme.AxisLabel})
		}
		if i < n-1 {
			out = append(out, Line{X1: 0, Y1: y0 + rowH, X2: float64(p.CanvasW), Y2: y0 + rowH, WidthPx: 1, Color: p.Theme.Separator})
		}
	}

	axisY := rowH * float64(n)
	out = append(out, buildAxis(p, axisY, float64(axisH))...)
	return out
}

func buildAxisOnly(p Parameters) []DrawObject {
	return buildAxis(p, 0, float64(p.CanvasH))
}

// axisHeightPx sizes the axis strip, shrinking toward a minimum so that
// every variable row keeps at least minRowHeightPx of height.
func axisHeightPx(canvasH, n int) int {
	h := 24
	for h > 0 {
		rowH := float64(canvasH-h) / float64(n)
		if rowH >= minRowHeightPx || h <= 1 {
			return h
		}
		h--
	}
	return h
}

func buildAxis(p Parameters, y0, h float64) []DrawObject {
	startNs, endNs := p.Viewport.RangeNs()
	out := []DrawObject{
		Rect{X: 0, Y: y0, W: float64(p.CanvasW), H: h, Color: p.Theme.AxisBg},
	}
	for _, tick := range BuildTicks(startNs, endNs, p.CanvasW) {
		out = append(out, Line{X1: tick.X, Y1: y0, X2: tick.X, Y2: y0 + h*0.4, WidthPx: 1, Color: p.Theme.AxisTick})
		if tick.Label != "" {
			out = append(out, Text{X: tick.X + 2, Y: y0 + h*0.6, Value: tick.Label, Color: p.Theme.AxisLabel})
		}
	}
	return out
}

// buildOverlayLayer draws the cursor bar and, when it differs from the
// cursor, the zoom-center bar (§4.5 overlay draw objects).
func buildOverlayLayer(p Parameters) []DrawObject {
	if p.CanvasW <= 0 || p.CanvasH <= 0 {
		return nil
	}
	startNs, endNs := p.Viewport.RangeNs()
	if endNs <= startNs {
		return nil
	}
	duration := float64(endNs - startNs)

	var out []DrawObject
	cursorNs := p.Cursor.ToNanosFloor()
	if cursorNs >= startNs && cursorNs <= endNs {
		x := float64(cursorNs-startNs) / duration * float64(p.CanvasW)
		out = append(out, Line{X1: x, Y1: 0, X2: x, Y2: float64(p.CanvasH), WidthPx: cursorLineWidth, Color: p.Theme.Cursor})
	}

	zcNs := p.ZoomCenter.ToNanosFloor()
	if zcNs != cursorNs && zcNs >= startNs && zcNs <= endNs {
		x := float64(zcNs-startNs) / duration * float64(p.CanvasW)
		out = append(out, Line{X1: x, Y1: 0, X2: x, Y2: float64(p.CanvasH), WidthPx: zoomCenterWidth, Color: p.Theme.ZoomCenter, Dashed: true})
	}

	return out
}
