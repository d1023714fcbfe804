// ABOUTME: CacheEntry: per-variable, per-LOD-bucket windowed transition buffer
// ABOUTME: Three-way stable merge with leading-transition synthesis (§4.2)

package cache

import (
	"sort"

	"github.com/wavecore/timeline/internal/timeps"
)

// CacheEntry is one windowed transition buffer for a variable at a given LOD.
type CacheEntry struct {
	LODBucket timeps.LODBucket
	RangeNs   Range
	Data      VariableSeriesData
}

// Range is a half-open [Start, End) nanosecond range.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns End - Start, or 0 if degenerate.
func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// touchesOrOverlaps reports whether r and o share any point or boundary —
// used to decide whether a response should merge into an existing entry
// (adjacent windows, e.g. continuous panning, still merge) versus replace it.
func (r Range) touchesOrOverlaps(o Range) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// overlap returns the length of the overlap between r and o.
func (r Range) overlap(o Range) uint64 {
	start := r.Start
	if o.Start > start {
		start = o.Start
	}
	end := r.End
	if o.End < end {
		end = o.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

// CoverageRatio is overlap(entry.RangeNs, r) / |r|, 0 when there is no
// overlap or r is empty (§4.2).
func (e CacheEntry) CoverageRatio(r Range) float64 {
	if r.Len() == 0 {
		return 0
	}
	return float64(e.RangeNs.overlap(r)) / float64(r.Len())
}

// minCoverageForHit is the coverage ratio that counts as a cache hit (§4.2, glossary).
const minCoverageForHit = 0.8

// mergeResponse merges a newly-fetched response into an optional existing
// entry, producing a new CacheEntry per the §4.2 merge algorithm:
//  1. three-way stable merge of transitions keyed by time_ns, later writer wins
//  2. extend range to the union of both ranges
//  3. synthesize a leading transition at the new range start if needed
func mergeResponse(existing *CacheEntry, bucket timeps.LODBucket, responseRange Range, response []SignalTransition) CacheEntry {
	var merged []SignalTransition
	newRange := responseRange

	if existing != nil {
		merged = threeWayMerge(existing.Data.Transitions, response)
		newRange = Range{
			Start: minU64(existing.RangeNs.Start, responseRange.Start),
			End:   maxU64(existing.RangeNs.End, responseRange.End),
		}
	} else {
		merged = append(merged, response...)
		merged = dedupeEqualTime(merged)
	}

	merged = ensureLeadingTransition(merged, newRange.Start, existing)

	return CacheEntry{
		LODBucket: bucket,
		RangeNs:   newRange,
		Data:      NewVariableSeriesData(merged),
	}
}

// threeWayMerge stably merges two time-ordered transition slices keyed by
// TimeNs; on equal times the later writer (b) replaces the earlier (a), and
// adjacent duplicates collapse (§4.2 step 1).
func threeWayMerge(a, b []SignalTransition) []SignalTransition {
	out := make([]SignalTransition, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].TimeNs < b[j].TimeNs:
			out = append(out, a[i])
			i++
		case a[i].TimeNs > b[j].TimeNs:
			out = append(out, b[j])
			j++
		default:
			// Equal times: b (the response, later writer) wins; skip a's entry.
			out = append(out, b[j])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return dedupeEqualTime(out)
}

// ensureLeadingTransition guarantees a transition exists at exactly
// rangeStart: if the first transition is strictly later, synthesize one by
// taking the last transition <= rangeStart from the previous buffer, or by
// cloning the first transition and rewriting only its timestamp (§4.2 step 3).
func ensureLeadingTransition(merged []SignalTransition, rangeStart uint64, existing *CacheEntry) []SignalTransition {
	if len(merged) == 0 {
		return merged
	}
	if merged[0].TimeNs <= rangeStart {
		return merged
	}

	var lead SignalTransition
	if existing != nil {
		if v, ok := priorValue(existing.Data.Transitions, rangeStart); ok {
			lead = SignalTransition{TimeNs: rangeStart, Value: v}
			return append([]SignalTransition{lead}, merged...)
		}
	}
	lead = SignalTransition{TimeNs: rangeStart, Value: merged[0].Value}
	return append([]SignalTransition{lead}, merged...)
}

// priorValue finds the value of the last transition with TimeNs <= at.
func priorValue(ts []SignalTransition, at uint64) (string, bool) {
	idx := sort.Search(len(ts), func(i int) bool { return ts[i].TimeNs > at })
	if idx == 0 {
		return "", false
	}
	return ts[idx-1].Value, true
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
