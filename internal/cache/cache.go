// ABOUTME: Timeline Cache (C2): per-variable deque of CacheEntry bounded at 2
// ABOUTME: best_entry/merge/retain_variables/invalidate_ids/clear (§4.2)

package cache

import (
	"sync"

	"github.com/wavecore/timeline/internal/timeps"
)

// MaxSegmentsPerVariable bounds memory: at most 2 entries per variable,
// most-recent first (§3 CACHE_MAX_SEGMENTS_PER_VARIABLE).
const MaxSegmentsPerVariable = 2

// Cache maps VariableId -> most-recent-first deque of CacheEntry, bounded.
// Safe for concurrent use: the Request Coordinator merges from its own
// goroutine while the renderer/cursor lookup read concurrently.
type Cache struct {
	mu      sync.RWMutex
	entries map[VariableId][]CacheEntry
}

// New constructs an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[VariableId][]CacheEntry)}
}

// BestEntry returns the entry for id whose LODBucket matches bucket and
// whose CoverageRatio(requested) is highest, provided it is >= 0.8 (§4.2).
func (c *Cache) BestEntry(id VariableId, bucket timeps.LODBucket, requested Range) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var best CacheEntry
	var bestRatio float64
	found := false
	for _, e := range c.entries[id] {
		if e.LODBucket != bucket {
			continue
		}
		ratio := e.CoverageRatio(requested)
		if ratio >= minCoverageForHit && (!found || ratio > bestRatio) {
			best, bestRatio, found = e, ratio, true
		}
	}
	return best, found
}

// Merge applies a response to the cache for id at bucket, producing a new
// entry per §4.2's merge algorithm, then pushes it to the front and evicts
// from the back until size <= MaxSegmentsPerVariable.
func (c *Cache) Merge(id VariableId, bucket timeps.LODBucket, responseRange Range, response []SignalTransition) CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.entries[id]
	var matchPtr *CacheEntry
	var rest []CacheEntry
	for i := range existing {
		if matchPtr == nil && existing[i].LODBucket == bucket && existing[i].RangeNs.touchesOrOverlaps(responseRange) {
			e := existing[i]
			matchPtr = &e
			continue
		}
		rest = append(rest, existing[i])
	}

	merged := mergeResponse(matchPtr, bucket, responseRange, response)

	next := append([]CacheEntry{merged}, rest...)
	if len(next) > MaxSegmentsPerVariable {
		next = next[:MaxSegmentsPerVariable]
	}
	c.entries[id] = next
	return merged
}

// AnyEntry returns the entry for id at bucket with the greatest overlap
// against no particular range — simply the first (most recent) entry at
// that bucket, regardless of the 0.8 hit threshold. Used by the Request
// Coordinator to distinguish "nothing cached" from "partial coverage"
// when planning missing-slice fetches (§4.3).
func (c *Cache) AnyEntry(id VariableId, bucket timeps.LODBucket) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries[id] {
		if e.LODBucket == bucket {
			return e, true
		}
	}
	return CacheEntry{}, false
}

// RetainVariables drops entries for ids not present in set (called when the
// selected-variable set changes, §4.2).
func (c *Cache) RetainVariables(set map[VariableId]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.entries {
		if _, ok := set[id]; !ok {
			delete(c.entries, id)
		}
	}
}

// InvalidateIds wipes all entries whose id is listed (called at
// file-reload start, §4.2).
func (c *Cache) InvalidateIds(ids []VariableId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
	}
}

// InvalidateFile wipes every entry whose id belongs to filePath (§3
// "invalidated when a file reload starts: any id whose file_path prefix
// matches").
func (c *Cache) InvalidateFile(filePath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.entries {
		if id.BelongsToFile(filePath) {
			delete(c.entries, id)
		}
	}
}

// Clear wipes the entire cache (catastrophic reset when bounds are lost, §4.2).
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[VariableId][]CacheEntry)
}

// EntryCount returns the number of cached segments for id (test/diagnostic hook).
func (c *Cache) EntryCount(id VariableId) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries[id])
}
