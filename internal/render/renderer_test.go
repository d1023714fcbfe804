package render

import (
	"testing"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/timeps"
)

func testParams(revision uint64) Parameters {
	vp, _ := timeps.New(0, timeps.FromNanos(1000))
	data := cache.NewVariableSeriesData([]cache.SignalTransition{
		{TimeNs: 0, Value: "0"},
		{TimeNs: 500, Value: "1"},
	})
	return Parameters{
		Viewport: vp,
		Cursor:   timeps.FromNanos(250),
		CanvasW:  200,
		CanvasH:  100,
		Theme:    DefaultTheme(),
		Variables: []VariableRenderSnapshot{
			{Id: cache.MustParseVariableId("f.vcd|tb|clk"), Label: "clk", Transitions: data},
		},
		Revision: revision,
	}
}

func TestRenderReusesStaticLayerForUnchangedKey(t *testing.T) {
	t.Parallel()
	r := New()
	p := testParams(1)

	first := r.Render(p)
	second := r.Render(p)
	if len(first) == 0 || len(second) == 0 {
		t.Fatal("expected non-empty draw object lists")
	}
	if len(first) != len(second) {
		t.Errorf("expected identical output for an unchanged key, got %d vs %d objects", len(first), len(second))
	}
}

func TestRenderRebuildsStaticLayerWhenRevisionChanges(t *testing.T) {
	t.Parallel()
	r := New()
	p1 := testParams(1)
	p2 := testParams(2)

	out1 := r.Render(p1)
	out2 := r.Render(p2)
	if r.key != p2.Key() {
		t.Errorf("static layer not rebuilt for revision 2: cached key %+v, want %+v", r.key, p2.Key())
	}
	if len(out1) != len(out2) {
		t.Errorf("expected structurally identical output for same data at different revisions, got %d vs %d", len(out1), len(out2))
	}
}

func TestRenderEmitsCursorOverlay(t *testing.T) {
	t.Parallel()
	r := New()
	p := testParams(1)
	objs := r.Render(p)

	found := false
	for _, o := range objs {
		if l, ok := o.(Line); ok && l.Color == p.Theme.Cursor {
			found = true
		}
	}
	if !found {
		t.Error("expected a cursor overlay line")
	}
}

func TestRenderWithNoVariablesStillDrawsAxis(t *testing.T) {
	t.Parallel()
	r := New()
	p := testParams(1)
	p.Variables = nil
	objs := r.Render(p)
	if len(objs) == 0 {
		t.Error("expected axis draw objects even with zero variables")
	}
}
