// ABOUTME: Paints a []DrawObject list onto a fixed-size terminal cell grid
// ABOUTME: Rect/Line fill background color runs, Text overlays characters

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is one terminal character position: a rune plus the background color
// it sits on. Foreground defaults to the background-contrasting axis/signal
// color already baked into the owning DrawObject.
type cell struct {
	ch rune
	bg lipgloss.Color
	fg lipgloss.Color
}

// Paint rasterizes objs onto a w x h terminal grid and returns the rendered
// string, one newline-joined line per row. Objects are painted in order, so
// later objects (overlays) draw over earlier ones (the static layer).
func Paint(objs []DrawObject, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := newGrid(w, h)
	for _, obj := range objs {
		switch o := obj.(type) {
		case Rect:
			grid.fillRect(o)
		case Line:
			grid.drawLine(o)
		case Text:
			grid.drawText(o)
		}
	}
	return grid.render()
}

type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	cells := make([]cell, w*h)
	for i := range cells {
		cells[i] = cell{ch: ' '}
	}
	return &grid{w: w, h: h, cells: cells}
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

func (g *grid) fillRect(r Rect) {
	x0, x1 := clampSpan(r.X, r.X+r.W, g.w)
	y0, y1 := clampSpan(r.Y, r.Y+r.H, g.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if c := g.at(x, y); c != nil {
				c.bg = r.Color
				c.ch = ' '
			}
		}
	}
}

func (g *grid) drawLine(l Line) {
	if l.X1 == l.X2 {
		x := int(l.X1)
		y0, y1 := clampSpan(l.Y1, l.Y2, g.h)
		ch := '│'
		if l.Dashed {
			ch = '┆'
		}
		for y := y0; y < y1; y++ {
			if l.Dashed && y%2 == 1 {
				continue
			}
			if c := g.at(x, y); c != nil {
				c.bg = l.Color
				c.fg = l.Color
				c.ch = ch
			}
		}
		return
	}
	y := int(l.Y1)
	x0, x1 := clampSpan(l.X1, l.X2, g.w)
	ch := '─'
	if l.Dashed {
		ch = '┄'
	}
	for x := x0; x < x1; x++ {
		if c := g.at(x, y); c != nil {
			c.bg = l.Color
			c.fg = l.Color
			c.ch = ch
		}
	}
}

func (g *grid) drawText(t Text) {
	x := int(t.X)
	y := int(t.Y)
	for _, r := range t.Value {
		if c := g.at(x, y); c != nil {
			c.fg = t.Color
			c.ch = r
		}
		x++
	}
}

func clampSpan(a, b float64, limit int) (int, int) {
	start := int(a)
	end := int(b)
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end < start {
		end = start
	}
	return start, end
}

// render flattens the grid into a string, coalescing runs of identical
// fg/bg into a single styled span per line to avoid re-emitting escape
// codes for every cell.
func (g *grid) render() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		g.renderRow(&b, y)
	}
	return b.String()
}

func (g *grid) renderRow(b *strings.Builder, y int) {
	row := g.cells[y*g.w : (y+1)*g.w]
	i := 0
	for i < len(row) {
		j := i + 1
		for j < len(row) && row[j].bg == row[i].bg && row[j].fg == row[i].fg {
			j++
		}
		var run strings.Builder
		for _, c := range row[i:j] {
			run.WriteRune(c.ch)
		}
		style := lipgloss.NewStyle()
		if row[i].bg != "" {
			style = style.Background(row[i].bg)
		}
		if row[i].fg != "" {
			style = style.Foreground(row[i].fg)
		}
		b.WriteString(style.Render(run.String()))
		i = j
	}
}
