// ABOUTME: Per-variable fetch planning: cache hit, missing-slice, or full fetch (§4.3)
// ABOUTME: margin m = max(1, |R|/4); fetches clamp to bounds when known

package coordinator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

// VariablePlan is one variable's fetch decision for the current requested range.
type VariablePlan struct {
	Id     cache.VariableId
	Format cache.Format
	Fetch  *cache.Range // nil means the cache already covers the request
}

// BuildPlan computes the fetch plan for every selected variable against the
// current cache state, requested range, and LOD bucket (§4.3). Each
// variable's plan only reads the cache (internally RWMutex-guarded) and
// writes its own slice slot, so planning fans out across an errgroup
// instead of a serial loop once the selected-variable count grows.
func BuildPlan(c *cache.Cache, variables []collab.SelectedVariable, bucket timeps.LODBucket, requested cache.Range, bounds *timeps.Bounds) []VariablePlan {
	plans := make([]VariablePlan, len(variables))
	g, _ := errgroup.WithContext(context.Background())
	for i, v := range variables {
		i, v := i, v
		g.Go(func() error {
			plans[i] = VariablePlan{
				Id:     v.Id,
				Format: v.Formatter,
				Fetch:  planOne(c, v.Id, bucket, requested, bounds),
			}
			return nil
		})
	}
	_ = g.Wait() // planOne never errors; Wait only fences completion
	return plans
}

// margin is max(1, |R|/4).
func margin(r cache.Range) uint64 {
	l := r.Len()
	m := l / 4
	if m < 1 {
		m = 1
	}
	return m
}

func planOne(c *cache.Cache, id cache.VariableId, bucket timeps.LODBucket, r cache.Range, bounds *timeps.Bounds) *cache.Range {
	m := margin(r)

	entry, hit := c.BestEntry(id, bucket, r)
	if hit {
		return nil
	}

	entryForBucket, hasAny := bestEntryForBucketAnyCoverage(c, id, bucket)
	if !hasAny {
		return clampRange(cache.Range{Start: subSat(r.Start, m), End: r.End + m}, bounds)
	}

	coversLeft := entryForBucket.RangeNs.Start <= r.Start
	coversRight := entryForBucket.RangeNs.End >= r.End

	switch {
	case coversLeft && !coversRight:
		return clampRange(cache.Range{Start: entryForBucket.RangeNs.End, End: r.End + m}, bounds)
	case coversRight && !coversLeft:
		return clampRange(cache.Range{Start: subSat(r.Start, m), End: entryForBucket.RangeNs.Start}, bounds)
	default:
		_ = entry
		return clampRange(cache.Range{Start: subSat(r.Start, m), End: r.End + m}, bounds)
	}
}

// bestEntryForBucketAnyCoverage returns the most recent entry at bucket
// regardless of how much of the viewport it covers (even below the 0.8 hit
// threshold), used to distinguish "no cached data at all" from "partially
// covers" (§4.3).
func bestEntryForBucketAnyCoverage(c *cache.Cache, id cache.VariableId, bucket timeps.LODBucket) (cache.CacheEntry, bool) {
	return c.AnyEntry(id, bucket)
}

func subSat(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func clampRange(r cache.Range, bounds *timeps.Bounds) *cache.Range {
	if bounds == nil {
		return &r
	}
	startNs, endNs := bounds.Start.ToNanosFloor(), bounds.End.ToNanosCeil()
	if r.Start < startNs {
		r.Start = startNs
	}
	if r.End > endNs {
		r.End = endNs
	}
	if r.End <= r.Start {
		r.End = r.Start + 1
		if r.End > endNs {
			r.End = endNs
			if r.Start >= r.End && r.End > 0 {
				r.Start = r.End - 1
			}
		}
	}
	return &r
}
