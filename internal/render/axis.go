// ABOUTME: Time axis: nice-number tick-step rounding and unit selection (§4.5, §8)
// ABOUTME: Ticks target ~80px spacing; labels collapse below a 56px minimum spacing

package render

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	desiredPxPerTick  = 80.0
	minTicks          = 2
	maxTicks          = 12
	labelMinSpacingPx = 56.0
)

// Tick is one time-axis gridline: an absolute time plus its formatted label.
type Tick struct {
	TimeNs uint64
	Label  string
	X      float64
}

// RoundToNice maps x to the smallest member of {1,2,5,10}·10^⌊log10 x⌋ that
// is >= x (§8 "nice-number rounding": round(0.12)=0.2, round(1.1)=2.0,
// round(6.5)=10.0). Used wherever a value must round UP to a round number.
func RoundToNice(x float64) float64 {
	if x <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(x))
	base := math.Pow(10, exp)
	f := x / base
	var nice float64
	switch {
	case f <= 1:
		nice = 1
	case f <= 2:
		nice = 2
	case f <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * base
}

// niceStepAtOrBelow picks the largest member of {1,2,5,10}·10^⌊log10 x⌋ that
// is <= x, so that a tick step derived from it never under-ticks the axis
// (§4.5: duration 2.5s, canvas_w=800 -> raw step 0.25 -> nice step 0.2, not
// 0.5 — RoundToNice's ceiling behavior would leave only 5 ticks instead of
// the desired ~10). This is a deliberate, distinct rounding mode from
// RoundToNice: see DESIGN.md for the rationale.
func niceStepAtOrBelow(x float64) float64 {
	if x <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(x))
	base := math.Pow(10, exp)
	f := x / base
	var nice float64
	switch {
	case f < 2:
		nice = 1
	case f < 5:
		nice = 2
	case f < 10:
		nice = 5
	default:
		nice = 10
	}
	return nice * base
}

// unitLadder lists candidate display units from largest to smallest, with
// the multiplier converting seconds to that unit.
var unitLadder = []struct {
	suffix string
	scale  float64
}{
	{"s", 1},
	{"ms", 1e3},
	{"us", 1e6},
	{"ns", 1e9},
}

// selectUnit picks the largest unit for which the full range is >= 1 and
// the tick step is >= 0.1, falling back to the smallest unit (§4.5).
func selectUnit(rangeS, stepS float64) (suffix string, scale float64) {
	for _, u := range unitLadder {
		if rangeS*u.scale >= 1 && stepS*u.scale >= 0.1 {
			return u.suffix, u.scale
		}
	}
	last := unitLadder[len(unitLadder)-1]
	return last.suffix, last.scale
}

// BuildTicks computes the time-axis ticks for the viewport [startNs, endNs)
// rendered across canvasW pixels (§4.5). Ticks are placed at the viewport
// edges plus every nice step in between; labels closer than
// labelMinSpacingPx to their neighbor are dropped (left empty).
func BuildTicks(startNs, endNs uint64, canvasW int) []Tick {
	if canvasW <= 0 || endNs <= startNs {
		return nil
	}
	durationNs := float64(endNs - startNs)
	durationS := durationNs / 1e9

	desired := float64(canvasW) / desiredPxPerTick
	if desired < minTicks {
		desired = minTicks
	}
	if desired > maxTicks {
		desired = maxTicks
	}

	rawStepS := durationS / desired
	stepS := niceStepAtOrBelow(rawStepS)
	if stepS <= 0 {
		stepS = durationS
	}

	suffix, scale := selectUnit(durationS, stepS)

	nppNs := durationNs / float64(canvasW)

	var ticks []Tick
	firstStepS := math.Ceil((float64(startNs)/1e9)/stepS) * stepS
	for tS := firstStepS; tS*1e9 <= float64(endNs); tS += stepS {
		tNs := uint64(math.Round(tS * 1e9))
		if tNs < startNs {
			continue
		}
		x := float64(tNs-startNs) / nppNs
		ticks = append(ticks, Tick{
			TimeNs: tNs,
			Label:  formatTickLabel(tS, scale, suffix),
			X:      x,
		})
	}

	ticks = addEdgeTick(ticks, startNs, 0, scale, suffix)
	ticks = addEdgeTick(ticks, endNs, float64(endNs-startNs)/nppNs, scale, suffix)
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].TimeNs < ticks[j].TimeNs })

	return dedupeClose(ticks)
}

// addEdgeTick inserts a tick at edgeNs (one of the two viewport edges) unless
// a tick at that exact time already exists (§4.5 "always emit ticks at the
// two viewport edges plus every nice step inside").
func addEdgeTick(ticks []Tick, edgeNs uint64, x, scale float64, suffix string) []Tick {
	for _, t := range ticks {
		if t.TimeNs == edgeNs {
			return ticks
		}
	}
	edgeS := float64(edgeNs) / 1e9
	return append(ticks, Tick{
		TimeNs: edgeNs,
		Label:  formatTickLabel(edgeS, scale, suffix),
		X:      x,
	})
}

func formatTickLabel(valueS, scale float64, suffix string) string {
	v := valueS * scale
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s + suffix
}

// dedupeClose drops labels whose neighbor is closer than labelMinSpacingPx,
// keeping the draw object (tick mark) but blanking the label text.
func dedupeClose(ticks []Tick) []Tick {
	for i := 1; i < len(ticks); i++ {
		if ticks[i].X-ticks[i-1].X < labelMinSpacingPx {
			ticks[i].Label = ""
		}
	}
	return ticks
}
