package input

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/state"
	"github.com/wavecore/timeline/internal/wire"
)

// Compile-time check: Model must satisfy tea.Model.
var _ tea.Model = Model{}

type fakeTransport struct{}

func (fakeTransport) Send(_ context.Context, _ wire.UnifiedSignalQuery, _ func(wire.QueryResponse)) {
}

func newTestEngine() *state.Engine {
	e := state.New(context.Background(), state.Dependencies{Transport: fakeTransport{}})
	e.SetCanvasSize(80, 24)
	return e
}

func TestKeyQStepsCursorBackward(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	before := e.Cursor()
	m := New(e, 80, 24)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if e.Cursor() >= before {
		t.Errorf("cursor = %d, want less than %d after 'q'", e.Cursor(), before)
	}
}

func TestKeyDArmsHoldAnimation(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	nm := next.(Model)
	if !nm.ticking {
		t.Error("expected ticking=true after a pan key")
	}
	if cmd == nil {
		t.Error("expected a tick command to be scheduled")
	}
}

func TestAnimTickStopsWhenHoldExpires(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	nm := next.(Model)
	nm.lastActionAt = time.Now().Add(-time.Second)

	next2, cmd := nm.Update(animTickMsg{})
	nm2 := next2.(Model)
	if nm2.ticking {
		t.Error("expected ticking to stop once the hold window has elapsed")
	}
	if cmd != nil {
		t.Error("expected no further tick once the hold has expired")
	}
}

func TestQuitOnCtrlC(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a command")
	}
}

func TestViewRendersWithinCanvasBounds(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 40, 10)
	m.params = e.Snapshot()
	out := m.View()
	if out == "" {
		t.Error("expected non-empty view output")
	}
}

func TestResetZoomCenterKey(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	e.FollowZoomCenter(e.Cursor())
	m := New(e, 80, 24)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if e.ZoomCenter() != 0 {
		t.Errorf("ZoomCenter = %d, want reset to 0", e.ZoomCenter())
	}
}

func TestToggleTooltipKey(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	before := e.TooltipEnabled()
	m := New(e, 80, 24)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if e.TooltipEnabled() == before {
		t.Error("expected tooltip-enabled to flip")
	}
}

func testParams() render.Parameters {
	return render.Parameters{
		Variables: []render.VariableRenderSnapshot{
			{Id: cache.MustParseVariableId("top.v|tb.dut|clk"), Label: "clk"},
			{Id: cache.MustParseVariableId("top.v|tb.dut|reset_n"), Label: "reset_n"},
			{Id: cache.MustParseVariableId("top.v|tb.dut|count"), Label: "count"},
		},
	}
}

func TestSlashOpensPalette(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	m.params = testParams()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	nm := next.(Model)
	if !nm.paletteOpen {
		t.Fatal("expected palette to open on '/'")
	}
	if len(nm.paletteMatches) != 3 {
		t.Errorf("got %d matches, want all 3 variables unranked", len(nm.paletteMatches))
	}
}

func TestPaletteFiltersWhileTyping(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	m.params = testParams()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	nm := next.(Model)

	next2, _ := nm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cou")})
	nm2 := next2.(Model)
	if nm2.paletteQuery != "cou" {
		t.Errorf("paletteQuery = %q, want %q", nm2.paletteQuery, "cou")
	}
	if len(nm2.paletteMatches) != 1 || !strings.Contains(nm2.paletteMatches[0].Variable.Id.String(), "count") {
		t.Errorf("expected only 'count' to match, got %+v", nm2.paletteMatches)
	}
}

func TestPaletteBackspaceEditsQuery(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 80, 24)
	m.params = testParams()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	nm := next.(Model)
	next2, _ := nm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("clk")})
	nm2 := next2.(Model)
	next3, _ := nm2.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	nm3 := next3.(Model)
	if nm3.paletteQuery != "cl" {
		t.Errorf("paletteQuery after backspace = %q, want %q", nm3.paletteQuery, "cl")
	}
}

func TestPaletteClosesOnEscAndEnter(t *testing.T) {
	t.Parallel()
	for _, keyType := range []tea.KeyType{tea.KeyEsc, tea.KeyEnter} {
		e := newTestEngine()
		m := New(e, 80, 24)
		m.params = testParams()
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
		nm := next.(Model)
		next2, _ := nm.Update(tea.KeyMsg{Type: keyType})
		nm2 := next2.(Model)
		if nm2.paletteOpen {
			t.Errorf("expected palette closed after key type %v", keyType)
		}
	}
}

func TestPaletteOpenRoutesOtherKeysToPaletteNotEngine(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	before := e.Cursor()
	m := New(e, 80, 24)
	m.params = testParams()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	nm := next.(Model)
	next2, _ := nm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	nm2 := next2.(Model)
	if e.Cursor() != before {
		t.Error("expected 'q' typed in the palette not to step the cursor")
	}
	if nm2.paletteQuery != "q" {
		t.Errorf("paletteQuery = %q, want %q", nm2.paletteQuery, "q")
	}
}

func TestViewShowsPaletteWhenOpen(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	m := New(e, 40, 10)
	m.params = testParams()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	nm := next.(Model)
	out := nm.View()
	if !strings.Contains(out, "jump to variable") {
		t.Error("expected palette prompt to appear in the view when open")
	}
}
