// ABOUTME: Renderer input/output contracts (§3 StaticRenderKey, §4.5 RenderParameters)
// ABOUTME: Parameters is an immutable snapshot; DrawObjects are the renderer's output

package render

import (
	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/timeps"
)

// VariableRenderSnapshot is one row's worth of renderer input (§4.5).
type VariableRenderSnapshot struct {
	Id           cache.VariableId
	Label        string
	Formatter    cache.Format
	Transitions  cache.VariableSeriesData
	CursorValue  cache.SignalValue
}

// Parameters is the immutable snapshot the renderer consumes (§4.5).
type Parameters struct {
	Viewport   timeps.Viewport
	Cursor     timeps.TimePs
	ZoomCenter timeps.TimePs
	CanvasW    int
	CanvasH    int
	Theme      Theme
	Variables  []VariableRenderSnapshot
	Revision   uint64 // bumped whenever any field above changes meaning
}

// StaticRenderKey identifies whether the static draw layer can be reused
// across frames (§3). Equal keys ⇒ the static layer is reusable.
type StaticRenderKey struct {
	CanvasW, CanvasH         int
	ViewportStartNs, ViewportEndNs uint64
	ThemeKey                 string
	VariablesSignature       uint64
	Revision                 uint64
}

// Key derives the StaticRenderKey for p.
func (p Parameters) Key() StaticRenderKey {
	startNs, endNs := p.Viewport.RangeNs()
	return StaticRenderKey{
		CanvasW:            p.CanvasW,
		CanvasH:            p.CanvasH,
		ViewportStartNs:    startNs,
		ViewportEndNs:      endNs,
		ThemeKey:           p.Theme.Key,
		VariablesSignature: variablesSignature(p.Variables),
		Revision:           p.Revision,
	}
}

// variablesSignature hashes each variable's id + format + buffer identity
// (§3 StaticRenderKey: "hashes each variable's id + format + buffer identity").
func variablesSignature(vars []VariableRenderSnapshot) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	mix := func(s string) {
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= prime
		}
	}
	for _, v := range vars {
		mix(v.Id.String())
		h ^= uint64(v.Formatter)
		h *= prime
		// Buffer identity: length + first/last transition times stand in for
		// pointer identity without requiring unsafe/reflect comparisons.
		n := len(v.Transitions.Transitions)
		h ^= uint64(n)
		h *= prime
		if n > 0 {
			h ^= v.Transitions.Transitions[0].TimeNs
			h *= prime
			h ^= v.Transitions.Transitions[n-1].TimeNs
			h *= prime
		}
	}
	return h
}
