package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/timeps"
	"github.com/wavecore/timeline/internal/wire"
)

// fakeTransport records every Send call for assertions; nothing responds
// unless the test explicitly invokes the captured callback.
type fakeTransport struct {
	mu   sync.Mutex
	sent []wire.UnifiedSignalQuery
}

func (f *fakeTransport) Send(_ context.Context, q wire.UnifiedSignalQuery, _ func(wire.QueryResponse)) {
	f.mu.Lock()
	f.sent = append(f.sent, q)
	f.mu.Unlock()
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestEngine() (*Engine, *fakeTransport) {
	ft := &fakeTransport{}
	e := New(context.Background(), Dependencies{Transport: ft})
	e.SetCanvasSize(500, 400)
	return e, ft
}

func TestStartupDefaultsWithNoDataAndNoRequest(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	e := New(context.Background(), Dependencies{Transport: ft})

	vp := e.Viewport()
	if vp.Start != 0 || vp.End != timeps.FromSeconds(1) {
		t.Errorf("viewport = %+v, want [0, 1s]", vp)
	}
	wantCursor := timeps.FromNanos(500_000_000)
	if e.Cursor() != wantCursor {
		t.Errorf("cursor = %d, want %d (500ms)", e.Cursor(), wantCursor)
	}
	time.Sleep(120 * time.Millisecond)
	if ft.count() != 0 {
		t.Errorf("expected no request with no variables selected, got %d", ft.count())
	}
}

func TestSetBoundsFirstArrivalSpansWholeFile(t *testing.T) {
	t.Parallel()
	e, ft := newTestEngine()
	e.SetVariables([]collab.SelectedVariable{{Id: cache.MustParseVariableId("f.vcd|tb|clk")}})

	b := timeps.Bounds{Start: timeps.FromNanos(0), End: timeps.FromNanos(250)}
	e.SetBounds(&b)

	vp := e.Viewport()
	if vp.Start != 0 || vp.End != timeps.FromNanos(250) {
		t.Errorf("viewport = %+v, want [0, 250ns]", vp)
	}
	wantCursor := timeps.FromNanos(125)
	if e.Cursor() != wantCursor {
		t.Errorf("cursor = %d, want %d (125ns midpoint)", e.Cursor(), wantCursor)
	}

	time.Sleep(120 * time.Millisecond)
	if ft.count() == 0 {
		t.Error("expected a request to be issued after selecting a variable with bounds")
	}
}

func TestZoomInPreservesAnchorPixelOffset(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	b := timeps.Bounds{Start: 0, End: timeps.FromSeconds(1)}
	e.SetBounds(&b)

	vp, err := timeps.New(0, timeps.FromNanos(250))
	if err != nil {
		t.Fatal(err)
	}
	e.mu.Lock()
	e.viewport = vp
	e.bounds = nil // avoid bounds clamping interfering with the scenario's arithmetic
	e.mu.Unlock()

	anchor := timeps.FromNanos(100)
	beforeRatio := anchorRatio(anchor, e.Viewport())
	beforePixel := beforeRatio * 500

	e.ZoomAt(anchor, true)

	after := e.Viewport()
	wantDuration := timeps.FromNanos(175)
	if diff := int64(after.Duration()) - int64(wantDuration); diff > 1 || diff < -1 {
		t.Errorf("duration = %d, want ~%d (250ns*0.7)", after.Duration(), wantDuration)
	}

	afterRatio := anchorRatio(anchor, after)
	afterPixel := afterRatio * 500
	if d := afterPixel - beforePixel; d > 1 || d < -1 {
		t.Errorf("anchor pixel drifted: before=%.1f after=%.1f", beforePixel, afterPixel)
	}
}

func TestJumpNextFindsNearestLoadedTransition(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	id := cache.MustParseVariableId("f.vcd|tb|clk")
	e.SetVariables([]collab.SelectedVariable{{Id: id}})

	bucket := timeps.BucketFor(e.Viewport().TimePerPixel(500))
	e.cacheStore.Merge(id, bucket, cache.Range{Start: 0, End: 1000}, []cache.SignalTransition{
		{TimeNs: 10, Value: "0"},
		{TimeNs: 20, Value: "1"},
		{TimeNs: 60, Value: "0"},
		{TimeNs: 90, Value: "1"},
	})

	e.mu.Lock()
	e.cursor = timeps.FromNanos(50)
	e.mu.Unlock()

	e.JumpCursor(1)
	if got := e.Cursor().ToNanosFloor(); got != 60 {
		t.Errorf("cursor after jump-next = %d, want 60", got)
	}
}

func TestPanIsNoOpAtBoundsEdge(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	b := timeps.Bounds{Start: 0, End: timeps.FromNanos(1000)}
	e.SetBounds(&b)

	e.mu.Lock()
	e.viewport = timeps.Viewport{Start: 0, End: timeps.FromNanos(1000)}
	e.mu.Unlock()

	before := e.Viewport()
	e.Pan(-1)
	after := e.Viewport()
	if before != after {
		t.Errorf("pan at left edge moved viewport: before=%+v after=%+v", before, after)
	}
}

func TestResetZoomIsIdempotent(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	b := timeps.Bounds{Start: 0, End: timeps.FromNanos(1000)}
	e.SetBounds(&b)
	e.ZoomAt(timeps.FromNanos(500), true)

	e.ResetZoom()
	once := e.Viewport()
	e.ResetZoom()
	twice := e.Viewport()
	if once != twice {
		t.Errorf("reset_zoom not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestTooltipAttachesEducationalMessageForZXU(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	id := cache.MustParseVariableId("f.vcd|tb|clk")
	e.SetVariables([]collab.SelectedVariable{{Id: id}})
	e.SetTooltipEnabled(true)

	bucket := timeps.BucketFor(e.Viewport().TimePerPixel(500))
	e.cacheStore.Merge(id, bucket, cache.Range{Start: 0, End: 1_000_000_000}, []cache.SignalTransition{
		{TimeNs: 0, Value: "Z"},
	})

	var got *render.TooltipData
	unsub := e.Tooltip().Subscribe(func(td *render.TooltipData) { got = td })
	defer unsub()

	e.HoverAt(0.0, 0.1) // row 0, below-alignment threshold
	if got == nil {
		t.Fatal("expected a tooltip to be published")
	}
	if got.EducationalMessage == "" {
		t.Error("expected an educational message for raw value Z")
	}
}

func TestReloadRestoresSnapshotAfterCompletion(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine()
	b := timeps.Bounds{Start: 0, End: timeps.FromNanos(1000)}
	e.SetBounds(&b)

	before := e.Viewport()
	beforeCursor := e.Cursor()

	e.ReloadStarted("f.vcd")
	e.mu.Lock()
	e.viewport = timeps.Viewport{Start: timeps.FromNanos(100), End: timeps.FromNanos(900)}
	e.cursor = timeps.FromNanos(500)
	e.mu.Unlock()

	e.ReloadCompleted("f.vcd")

	if e.Viewport() != before {
		t.Errorf("viewport not restored after reload: got %+v, want %+v", e.Viewport(), before)
	}
	if e.Cursor() != beforeCursor {
		t.Errorf("cursor not restored after reload: got %d, want %d", e.Cursor(), beforeCursor)
	}
}

var _ collab.Transport = (*fakeTransport)(nil)
