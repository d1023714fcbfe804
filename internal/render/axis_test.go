package render

import "testing"

func TestRoundToNiceMatchesWorkedExamples(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want float64
	}{
		{0.12, 0.2},
		{1.1, 2.0},
		{6.5, 10.0},
	}
	for _, c := range cases {
		if got := RoundToNice(c.in); got != c.want {
			t.Errorf("RoundToNice(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNiceStepAtOrBelowNeverUnderTicks(t *testing.T) {
	t.Parallel()
	// duration 2.5s, canvas_w=800, ~10 desired ticks -> raw step 0.25 -> 0.2
	got := niceStepAtOrBelow(0.25)
	if got != 0.2 {
		t.Errorf("niceStepAtOrBelow(0.25) = %v, want 0.2", got)
	}
}

func TestBuildTicksCoversViewportEdges(t *testing.T) {
	t.Parallel()
	const startNs, endNs = 0, 2_500_000_000
	ticks := BuildTicks(startNs, endNs, 800)
	if len(ticks) == 0 {
		t.Fatal("expected at least one tick")
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].X < ticks[i-1].X {
			t.Errorf("ticks out of order: %+v then %+v", ticks[i-1], ticks[i])
		}
	}
	if ticks[0].TimeNs != startNs {
		t.Errorf("first tick TimeNs = %d, want viewport start %d", ticks[0].TimeNs, startNs)
	}
	last := ticks[len(ticks)-1]
	if last.TimeNs != endNs {
		t.Errorf("last tick TimeNs = %d, want viewport end %d", last.TimeNs, endNs)
	}
	// The end-edge tick sits at 800px, only 32px after the 2.4s tick at
	// 768px, so its label is skipped (§8 scenario 6).
	if last.Label != "" {
		t.Errorf("last tick label = %q, want empty (within %vpx of the previous label)", last.Label, labelMinSpacingPx)
	}
	if prev := ticks[len(ticks)-2]; prev.Label != "2.4s" {
		t.Errorf("second-to-last tick label = %q, want %q", prev.Label, "2.4s")
	}
}

func TestBuildTicksEmitsStartEdgeWhenOffStep(t *testing.T) {
	t.Parallel()
	// start is not a multiple of the nice step, so the start edge must be
	// added explicitly rather than produced by the step loop.
	const startNs, endNs = 300_000_000, 2_800_000_000
	ticks := BuildTicks(startNs, endNs, 800)
	if ticks[0].TimeNs != startNs {
		t.Errorf("first tick TimeNs = %d, want viewport start %d", ticks[0].TimeNs, startNs)
	}
	if ticks[len(ticks)-1].TimeNs != endNs {
		t.Errorf("last tick TimeNs = %d, want viewport end %d", ticks[len(ticks)-1].TimeNs, endNs)
	}
}

func TestBuildTicksDropsCloseLabels(t *testing.T) {
	t.Parallel()
	ticks := BuildTicks(0, 10_000, 40) // tiny canvas forces tight spacing
	for i := 1; i < len(ticks); i++ {
		if ticks[i].X-ticks[i-1].X < labelMinSpacingPx && ticks[i].Label != "" {
			t.Errorf("expected label dropped for tick closer than %vpx: %+v", labelMinSpacingPx, ticks[i])
		}
	}
}

func TestSelectUnitPrefersLargerUnit(t *testing.T) {
	t.Parallel()
	suffix, _ := selectUnit(2.5, 0.2)
	if suffix != "s" {
		t.Errorf("selectUnit(2.5, 0.2) suffix = %q, want s", suffix)
	}
	suffix, _ = selectUnit(0.000002, 0.0000002)
	if suffix != "us" {
		t.Errorf("selectUnit(2us range) suffix = %q, want us", suffix)
	}
}
