package coordinator

import (
	"testing"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

func boundsPs(startNs, endNs uint64) timeps.Bounds {
	return timeps.Bounds{Start: timeps.FromNanos(startNs), End: timeps.FromNanos(endNs)}
}

func vars(ids ...string) []collab.SelectedVariable {
	out := make([]collab.SelectedVariable, len(ids))
	for i, s := range ids {
		out[i] = collab.SelectedVariable{Id: cache.MustParseVariableId(s)}
	}
	return out
}

func TestBuildPlanFetchesExpandedRangeWhenNoCache(t *testing.T) {
	t.Parallel()
	c := cache.New()
	r := cache.Range{Start: 1000, End: 2000}
	plans := BuildPlan(c, vars("f.vcd|tb|clk"), 4, r, nil)
	if len(plans) != 1 || plans[0].Fetch == nil {
		t.Fatalf("expected a fetch plan, got %+v", plans)
	}
	m := margin(r) // 250
	if plans[0].Fetch.Start != r.Start-m || plans[0].Fetch.End != r.End+m {
		t.Errorf("fetch = %+v, want [%d,%d)", plans[0].Fetch, r.Start-m, r.End+m)
	}
}

func TestBuildPlanNoFetchWhenFullyCovered(t *testing.T) {
	t.Parallel()
	c := cache.New()
	id := cache.MustParseVariableId("f.vcd|tb|clk")
	c.Merge(id, 4, cache.Range{Start: 0, End: 10000}, []cache.SignalTransition{{TimeNs: 0, Value: "0"}})

	plans := BuildPlan(c, vars("f.vcd|tb|clk"), 4, cache.Range{Start: 1000, End: 2000}, nil)
	if plans[0].Fetch != nil {
		t.Errorf("expected no fetch, got %+v", plans[0].Fetch)
	}
}

func TestBuildPlanMissingRightFetchesFromEntryEnd(t *testing.T) {
	t.Parallel()
	c := cache.New()
	id := cache.MustParseVariableId("f.vcd|tb|clk")
	c.Merge(id, 4, cache.Range{Start: 0, End: 1000}, []cache.SignalTransition{{TimeNs: 0, Value: "0"}})

	r := cache.Range{Start: 0, End: 2000}
	plans := BuildPlan(c, vars("f.vcd|tb|clk"), 4, r, nil)
	fetch := plans[0].Fetch
	if fetch == nil {
		t.Fatal("expected fetch for missing right side")
	}
	if fetch.Start != 1000 {
		t.Errorf("fetch.Start = %d, want 1000 (entry end)", fetch.Start)
	}
}

func TestBuildPlanClampsToBounds(t *testing.T) {
	t.Parallel()
	c := cache.New()
	bounds := boundsPs(500, 1500)
	r := cache.Range{Start: 100, End: 2000}
	plans := BuildPlan(c, vars("f.vcd|tb|clk"), 4, r, &bounds)
	fetch := plans[0].Fetch
	if fetch.Start != 500 || fetch.End != 1500 {
		t.Errorf("fetch = %+v, want clamped to [500,1500)", fetch)
	}
}
