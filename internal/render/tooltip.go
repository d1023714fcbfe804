// ABOUTME: TooltipData is the hover-readout snapshot published alongside Parameters
// ABOUTME: Computed by the Engine (C4); consumed read-only by the host UI

package render

import "github.com/wavecore/timeline/internal/cache"

// VerticalAlignment controls which side of the cursor the tooltip box is
// drawn on, flipping to Below near the top edge (§4.4).
type VerticalAlignment int

const (
	AlignAbove VerticalAlignment = iota
	AlignBelow
)

// TooltipData is the hover readout for one variable at one point in time
// (§3 data model).
type TooltipData struct {
	VariableLabel      string
	VariableId         cache.VariableId
	Time               uint64 // nanoseconds
	FormattedValue     string
	RawValue           string
	EducationalMessage string // empty when the value has none (§4.5 Z|X|U)
	ScreenX, ScreenY    float64
	VerticalAlignment  VerticalAlignment
}
