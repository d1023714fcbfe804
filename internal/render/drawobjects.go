// ABOUTME: 2D draw object sum type: Rect, Line, Text — the renderer's output (§4.5)
// ABOUTME: Concrete types implementing a marker interface, mirroring tui.Overlay's shape

package render

import "github.com/charmbracelet/lipgloss"

// DrawObject is implemented by every drawable primitive the renderer emits.
type DrawObject interface {
	drawObject()
}

// Rect is an axis-aligned filled rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
	Color      lipgloss.Color
}

func (Rect) drawObject() {}

// Line is a straight segment, optionally dashed, used for separators,
// dividers, and the cursor/zoom-center overlay bars.
type Line struct {
	X1, Y1, X2, Y2 float64
	WidthPx        float64
	Color          lipgloss.Color
	Dashed         bool
}

func (Line) drawObject() {}

// Text is a left-aligned label drawn at a pixel position.
type Text struct {
	X, Y  float64
	Value string
	Color lipgloss.Color
}

func (Text) drawObject() {}
