// ABOUTME: Per-pixel signal rasterization: None/Single/Mixed pixel state, run
// ABOUTME: coalescing, and signal-state color classification (§4.5)

package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wavecore/timeline/internal/cache"
)

type pixelKind int

const (
	pixelNone pixelKind = iota
	pixelSingle
	pixelMixed
)

type pixelState struct {
	kind  pixelKind
	value string
}

// rasterizeRow computes the per-pixel state array for one variable's
// transitions against the viewport, then coalesces it into draw objects
// (§4.5 "per-pixel segment rasterization").
func rasterizeRow(data cache.VariableSeriesData, startNs, endNs uint64, widthPx int, rowY0, rowH float64, theme Theme, runParity int) []DrawObject {
	if widthPx <= 0 || endNs <= startNs {
		return nil
	}
	pixels := make([]pixelState, widthPx)
	nppNs := float64(endNs-startNs) / float64(widthPx)

	ts := data.Transitions
	for i, t := range ts {
		segStart := t.TimeNs
		var segEnd uint64
		if i+1 < len(ts) {
			segEnd = ts[i+1].TimeNs
		} else {
			segEnd = endNs
		}
		if segEnd <= startNs || segStart >= endNs {
			continue
		}
		clipStart := segStart
		if clipStart < startNs {
			clipStart = startNs
		}
		clipEnd := segEnd
		if clipEnd > endNs {
			clipEnd = endNs
		}

		pxStart := int(math.Floor(float64(clipStart-startNs) / nppNs))
		pxEnd := int(math.Ceil(float64(clipEnd-startNs) / nppNs))
		if pxStart < 0 {
			pxStart = 0
		}
		if pxEnd > widthPx {
			pxEnd = widthPx
		}
		for px := pxStart; px < pxEnd; px++ {
			applyPixel(&pixels[px], t.Value)
		}
	}

	return coalesceRuns(pixels, widthPx, rowY0, rowH, theme, runParity)
}

func applyPixel(p *pixelState, value string) {
	switch p.kind {
	case pixelNone:
		p.kind = pixelSingle
		p.value = value
	case pixelSingle:
		if p.value != value {
			p.kind = pixelMixed
			p.value = ""
		}
	case pixelMixed:
		// stays Mixed
	}
}

// coalesceRuns walks the pixel array and emits one draw object group per
// maximal run of equal state, alternating tint by runParity (§4.5).
func coalesceRuns(pixels []pixelState, widthPx int, rowY0, rowH float64, theme Theme, runParity int) []DrawObject {
	var out []DrawObject
	i := 0
	for i < widthPx {
		if pixels[i].kind == pixelNone {
			i++
			continue
		}
		j := i + 1
		for j < widthPx && pixels[j].kind == pixels[i].kind && pixels[j].value == pixels[i].value {
			j++
		}
		out = append(out, runObjects(pixels[i], float64(i), float64(j-i), rowY0, rowH, theme, runParity, i > 0)...)
		runParity++
		i = j
	}
	return out
}

func runObjects(p pixelState, x, w, rowY0, rowH float64, theme Theme, runParity int, drawDivider bool) []DrawObject {
	var objs []DrawObject
	if drawDivider {
		objs = append(objs, Line{X1: x, Y1: rowY0, X2: x, Y2: rowY0 + rowH, WidthPx: 1, Color: theme.Separator})
	}

	if p.kind == pixelMixed {
		rect := Rect{X: x, Y: rowY0, W: w, H: rowH, Color: theme.MixedHighlight}
		return append(objs, rect)
	}

	state := classifySignalState(p.value)
	if state == stateMissing {
		return objs
	}

	color := signalColor(theme, state)
	if runParity%2 == 1 {
		color = Tint(color, theme.SegmentAltMultiplier)
	}

	y, h := rowY0, rowH
	if state == stateHighZ {
		// High-impedance draws a half-height bar centered in the row (§4.5).
		y = rowY0 + rowH*0.25
		h = rowH * 0.5
	}
	objs = append(objs, Rect{X: x, Y: y, W: w, H: h, Color: color})

	if w > 18 && rowH > 14 {
		label := FormatSegmentValue(p.value)
		maxChars := int(w) / 7
		label = TruncateLabel(label, maxChars)
		if label != "" {
			objs = append(objs, Text{X: x + 3, Y: rowY0 + rowH/2, Value: label, Color: theme.AxisLabel})
		}
	}
	return objs
}

type signalState int

const (
	stateLow signalState = iota
	stateHigh
	stateBus
	stateHighZ
	stateUnknown
	stateUninitialized
	stateMissing
)

// classifySignalState maps a raw transition value to its display class
// (§4.5 "signal state classification").
func classifySignalState(raw string) signalState {
	switch strings.ToUpper(raw) {
	case "Z":
		return stateHighZ
	case "X":
		return stateUnknown
	case "U":
		return stateUninitialized
	case "N/A", "NA", "":
		return stateMissing
	}
	if len(raw) == 1 {
		switch raw {
		case "0":
			return stateLow
		case "1":
			return stateHigh
		}
	}
	return stateBus
}

func signalColor(theme Theme, state signalState) lipgloss.Color {
	switch state {
	case stateLow:
		return theme.Low
	case stateHigh:
		return theme.High
	case stateHighZ:
		return theme.HighImpedance
	case stateUnknown:
		return theme.Unknown
	case stateUninitialized:
		return theme.Uninitialized
	default:
		return theme.Bus
	}
}
