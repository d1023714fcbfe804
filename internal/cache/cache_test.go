package cache

import "testing"

func mkID(t *testing.T) VariableId {
	t.Helper()
	return MustParseVariableId("wave.vcd|tb.dut|clk")
}

func TestParseVariableIdSplitsOnFirstTwoPipes(t *testing.T) {
	t.Parallel()
	id, err := ParseVariableId("a/b/c.vcd|top.dut|signal|weird")
	if err != nil {
		t.Fatal(err)
	}
	if id.FilePath != "a/b/c.vcd" || id.ScopePath != "top.dut" || id.Variable != "signal|weird" {
		t.Errorf("got %+v", id)
	}
}

func TestParseVariableIdRejectsMissingPipes(t *testing.T) {
	t.Parallel()
	if _, err := ParseVariableId("no-pipes-here"); err == nil {
		t.Error("expected error")
	}
	if _, err := ParseVariableId("only|one"); err == nil {
		t.Error("expected error")
	}
}

func TestBelongsToFile(t *testing.T) {
	t.Parallel()
	id := MustParseVariableId("dir/wave.vcd|tb|clk")
	if !id.BelongsToFile("dir/wave.vcd") {
		t.Error("expected exact match")
	}
	if id.BelongsToFile("other.vcd") {
		t.Error("expected no match")
	}
}

func TestDedupeEqualTimeLaterWriterWins(t *testing.T) {
	t.Parallel()
	d := NewVariableSeriesData([]SignalTransition{
		{TimeNs: 10, Value: "0"},
		{TimeNs: 10, Value: "1"},
		{TimeNs: 20, Value: "1"},
	})
	if len(d.Transitions) != 2 {
		t.Fatalf("len = %d, want 2", len(d.Transitions))
	}
	if d.Transitions[0].Value != "1" {
		t.Errorf("value at t=10 = %q, want %q (later writer wins)", d.Transitions[0].Value, "1")
	}
}

func TestValueAtOrBefore(t *testing.T) {
	t.Parallel()
	d := NewVariableSeriesData([]SignalTransition{
		{TimeNs: 10, Value: "0"},
		{TimeNs: 20, Value: "1"},
		{TimeNs: 60, Value: "X"},
	})
	if _, ok := d.ValueAtOrBefore(5).IsPresent(); ok {
		t.Error("expected Missing before first transition")
	}
	if v, _ := d.ValueAtOrBefore(15).IsPresent(); v != "0" {
		t.Errorf("got %q, want 0", v)
	}
	if v, _ := d.ValueAtOrBefore(60).IsPresent(); v != "X" {
		t.Errorf("got %q, want X", v)
	}
}

func TestCacheMergeNoExistingEntry(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	entry := c.Merge(id, 4, Range{Start: 0, End: 100}, []SignalTransition{
		{TimeNs: 0, Value: "0"},
		{TimeNs: 50, Value: "1"},
	})
	if entry.RangeNs != (Range{Start: 0, End: 100}) {
		t.Errorf("range = %+v", entry.RangeNs)
	}
	if got, ok := c.BestEntry(id, 4, Range{Start: 0, End: 100}); !ok || got.CoverageRatio(Range{Start: 0, End: 100}) != 1 {
		t.Errorf("expected full coverage hit, got ok=%v entry=%+v", ok, got)
	}
}

func TestCacheMergeExtendsRangeAndStaysMonotone(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	c.Merge(id, 4, Range{Start: 100, End: 200}, []SignalTransition{
		{TimeNs: 100, Value: "0"},
		{TimeNs: 150, Value: "1"},
	})
	entry := c.Merge(id, 4, Range{Start: 200, End: 300}, []SignalTransition{
		{TimeNs: 250, Value: "0"},
	})
	if entry.RangeNs != (Range{Start: 100, End: 300}) {
		t.Errorf("range = %+v, want [100,300)", entry.RangeNs)
	}
	// The merged buffer already starts at 100, the merged range start, so no
	// leading transition is synthesized; check the merged data stays monotone.
	ts := entry.Data.Transitions
	for i := 1; i < len(ts); i++ {
		if ts[i].TimeNs < ts[i-1].TimeNs {
			t.Fatalf("not monotone: %+v", ts)
		}
	}
}

func TestCacheMergeSynthesizesLeadingTransitionWhenGapExists(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	c.Merge(id, 4, Range{Start: 0, End: 100}, []SignalTransition{
		{TimeNs: 0, Value: "0"},
		{TimeNs: 50, Value: "1"},
	})
	// Disjoint response range further ahead with no overlap: merge stores it
	// as a fresh entry, and since its first transition (250) lies after its
	// range start (200), a leading transition is synthesized at 200 carrying
	// the first value.
	entry := c.Merge(id, 4, Range{Start: 200, End: 300}, []SignalTransition{
		{TimeNs: 250, Value: "Z"},
	})
	if entry.Data.Transitions[0].TimeNs != 200 {
		t.Errorf("leading transition time = %d, want synthesized at 200", entry.Data.Transitions[0].TimeNs)
	}
}

func TestCacheBoundedAtMaxSegments(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	c.Merge(id, 4, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	c.Merge(id, 8, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	c.Merge(id, 16, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	if got := c.EntryCount(id); got != MaxSegmentsPerVariable {
		t.Errorf("EntryCount = %d, want %d", got, MaxSegmentsPerVariable)
	}
}

func TestRetainVariablesDropsUnselected(t *testing.T) {
	t.Parallel()
	c := New()
	keep := mkID(t)
	drop := MustParseVariableId("wave.vcd|tb.dut|rst")
	c.Merge(keep, 4, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	c.Merge(drop, 4, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})

	c.RetainVariables(map[VariableId]struct{}{keep: {}})

	if c.EntryCount(keep) == 0 {
		t.Error("expected kept variable to remain cached")
	}
	if c.EntryCount(drop) != 0 {
		t.Error("expected dropped variable to be evicted")
	}
}

func TestInvalidateFileDropsPrefixedIds(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	c.Merge(id, 4, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	c.InvalidateFile("wave.vcd")
	if c.EntryCount(id) != 0 {
		t.Error("expected entry to be invalidated")
	}
}

func TestClearWipesEverything(t *testing.T) {
	t.Parallel()
	c := New()
	id := mkID(t)
	c.Merge(id, 4, Range{Start: 0, End: 10}, []SignalTransition{{TimeNs: 0, Value: "0"}})
	c.Clear()
	if c.EntryCount(id) != 0 {
		t.Error("expected cache to be empty after Clear")
	}
}
