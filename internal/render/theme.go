// ABOUTME: Theme is the semantic color palette driving row/segment/axis colors
// ABOUTME: Colors resolve through lipgloss so the renderer never hardcodes ANSI

package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the semantic palette a RenderParameters snapshot carries.
// Key identifies the theme for StaticRenderKey equality (§3).
type Theme struct {
	Key string

	RowBgEven lipgloss.Color
	RowBgOdd  lipgloss.Color
	Separator lipgloss.Color

	// Signal-state colors (§4.5 "signal state classification").
	Low            lipgloss.Color
	High           lipgloss.Color
	Bus            lipgloss.Color
	HighImpedance  lipgloss.Color
	Unknown        lipgloss.Color
	Uninitialized  lipgloss.Color
	MixedHighlight lipgloss.Color

	SegmentAltMultiplier float64

	AxisBg    lipgloss.Color
	AxisTick  lipgloss.Color
	AxisLabel lipgloss.Color

	Cursor     lipgloss.Color
	ZoomCenter lipgloss.Color
}

// DefaultTheme is the built-in palette used when no theme asset is loaded.
func DefaultTheme() Theme {
	return Theme{
		Key:       "default",
		RowBgEven: lipgloss.Color("#262626"),
		RowBgOdd:  lipgloss.Color("#1c1c1c"),
		Separator: lipgloss.Color("#444444"),

		Low:            lipgloss.Color("#1f8b2c"),
		High:           lipgloss.Color("#2ecc40"),
		Bus:            lipgloss.Color("#2f8fd1"),
		HighImpedance:  lipgloss.Color("#808080"),
		Unknown:        lipgloss.Color("#e0302d"),
		Uninitialized:  lipgloss.Color("#9b6bc9"),
		MixedHighlight: lipgloss.Color("#e08a1e"),

		SegmentAltMultiplier: 0.85,

		AxisBg:    lipgloss.Color("#303030"),
		AxisTick:  lipgloss.Color("#bcbcbc"),
		AxisLabel: lipgloss.Color("#d0d0d0"),

		Cursor:     lipgloss.Color("#ffd700"),
		ZoomCenter: lipgloss.Color("#00ff5f"),
	}
}

// RowBg returns the alternating row background for row index i.
func (t Theme) RowBg(i int) lipgloss.Color {
	if i%2 == 0 {
		return t.RowBgEven
	}
	return t.RowBgOdd
}

// Tint scales c's luminance by multiplier, used to distinguish alternating
// signal-state runs on the same row (§4.5 "tinted on alternating runs").
// Falls back to c itself when it isn't a recognizable hex color.
func Tint(c lipgloss.Color, multiplier float64) lipgloss.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, s, v := col.Hsv()
	v *= multiplier
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return lipgloss.Color(colorful.Hsv(h, s, v).Hex())
}
