// ABOUTME: Bubble Tea model wrapping the timeline Engine: key dispatch, mouse
// ABOUTME: hover, and the tick-driven hold animation for pan/zoom/cursor keys

package input

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/doc"
	"github.com/wavecore/timeline/internal/finder"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/state"
)

// animInterval is the tick cadence driving held-key pan/zoom repetition and
// the shift-modifier decay, independent of terminal key-repeat rate.
const animInterval = 60 * time.Millisecond

// holdWindow is how long a direction stays "active" after its last keypress
// before the animation loop lets it go cold (§4.6 smooth pan/zoom).
const holdWindow = 150 * time.Millisecond

// shiftDecayWindow is how long SetShiftHeld(true) lingers after the last
// shift-combo keypress. Bubble Tea delivers no key-up event, so held-shift
// is inferred from keypress recency rather than tracked directly.
const shiftDecayWindow = 400 * time.Millisecond

// action identifies a repeatable hold action driven by the animation tick.
type action int

const (
	actionNone action = iota
	actionPanLeft
	actionPanRight
	actionZoomIn
	actionZoomOut
)

// frameMsg carries a freshly published render.Parameters snapshot.
type frameMsg render.Parameters

// tooltipMsg carries a freshly published tooltip snapshot (nil clears it).
type tooltipMsg struct{ data *render.TooltipData }

// animTickMsg drives the hold-animation and shift-decay loop.
type animTickMsg struct{}

// Model is the root Bubble Tea model for the timeline viewer.
type Model struct {
	engine *state.Engine

	width, height int

	params  render.Parameters
	tooltip *render.TooltipData
	renderer *render.Renderer

	// Debug, when set, renders a hovered value's educational message
	// (the Z|X|U explanations, §4.5) as markdown to stderr via docRenderer.
	Debug       bool
	docRenderer *doc.Renderer

	activeAction   action
	lastActionAt   time.Time
	lastShiftKeyAt time.Time
	ticking        bool

	paletteOpen    bool
	paletteQuery   string
	paletteMatches []finder.Match

	frames   chan render.Parameters
	tooltips chan *render.TooltipData
}

// New builds a Model driving engine, with an initial canvas size of w x h.
func New(engine *state.Engine, w, h int) Model {
	return Model{
		engine:   engine,
		width:    w,
		height:   h,
		renderer: render.New(),
		frames:   make(chan render.Parameters, 8),
		tooltips: make(chan *render.TooltipData, 8),
	}
}

// Init subscribes to the engine's buses and primes the canvas size.
func (m Model) Init() tea.Cmd {
	m.engine.SetCanvasSize(m.width, m.height)
	m.engine.Params().Subscribe(func(p render.Parameters) {
		select {
		case m.frames <- p:
		default:
		}
	})
	m.engine.Tooltip().Subscribe(func(t *render.TooltipData) {
		select {
		case m.tooltips <- t:
		default:
		}
	})
	return tea.Batch(waitForFrame(m.frames), waitForTooltip(m.tooltips))
}

func waitForFrame(ch chan render.Parameters) tea.Cmd {
	return func() tea.Msg { return frameMsg(<-ch) }
}

func waitForTooltip(ch chan *render.TooltipData) tea.Cmd {
	return func() tea.Msg { return tooltipMsg{data: <-ch} }
}

// Update routes messages: window resize, published frames/tooltips, key
// dispatch, mouse hover, and the animation tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.engine.SetCanvasSize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.params = render.Parameters(msg)
		return m, waitForFrame(m.frames)

	case tooltipMsg:
		m.tooltip = msg.data
		m.printDebugTooltip()
		return m, waitForTooltip(m.tooltips)

	case animTickMsg:
		return m.handleAnimTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.paletteOpen {
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "/":
		m.paletteOpen = true
		m.paletteQuery = ""
		m.paletteMatches = finder.Find("", selectedVariables(m.params))
		return m, nil

	case "q":
		m.engine.StepCursor(-1)
		return m, nil
	case "e":
		m.engine.StepCursor(1)
		return m, nil
	case "shift+q", "Q":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.JumpCursor(-1)
		return m.armShiftDecay()
	case "shift+e", "E":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.JumpCursor(1)
		return m.armShiftDecay()

	case "a":
		m.engine.Pan(-1)
		return m.armHold(actionPanLeft)
	case "d":
		m.engine.Pan(1)
		return m.armHold(actionPanRight)
	case "w":
		m.engine.ZoomIn()
		return m.armHold(actionZoomIn)
	case "s":
		m.engine.ZoomOut()
		return m.armHold(actionZoomOut)

	case "shift+a", "A":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.Pan(-1)
		return m.armHold(actionPanLeft)
	case "shift+d", "D":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.Pan(1)
		return m.armHold(actionPanRight)
	case "shift+w", "W":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.ZoomIn()
		return m.armHold(actionZoomIn)
	case "shift+s", "S":
		m.lastShiftKeyAt = now()
		m.engine.SetShiftHeld(true)
		m.engine.ZoomOut()
		return m.armHold(actionZoomOut)

	case "r":
		m.engine.ResetZoom()
		return m, nil
	case "z":
		m.engine.ResetZoomCenter()
		return m, nil
	case "t":
		m.engine.ToggleTooltip()
		return m, nil
	}
	return m, nil
}

// handlePaletteKey handles keystrokes while the jump-to-variable command
// palette is open: Esc/Enter close it, Backspace edits the query, any
// other rune appends to it. Selection itself stays an external
// collaborator's responsibility (§1 scope) — the palette only locates.
func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.paletteOpen = false
		return m, nil
	case tea.KeyBackspace:
		if n := len(m.paletteQuery); n > 0 {
			m.paletteQuery = m.paletteQuery[:n-1]
		}
	case tea.KeyRunes:
		m.paletteQuery += string(msg.Runes)
	default:
		return m, nil
	}
	m.paletteMatches = finder.Find(m.paletteQuery, selectedVariables(m.params))
	return m, nil
}

// selectedVariables extracts p's variables as the shape finder.Find ranks
// over, without requiring render.Parameters to depend on collab itself.
func selectedVariables(p render.Parameters) []collab.SelectedVariable {
	out := make([]collab.SelectedVariable, len(p.Variables))
	for i, v := range p.Variables {
		out[i] = collab.SelectedVariable{Id: v.Id, Formatter: v.Formatter}
	}
	return out
}

// armShiftDecay starts the animation loop solely to decay the shift-held
// flag when the triggering key (e.g. a jump) has no hold action of its own.
func (m Model) armShiftDecay() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickAnim()
}

// armHold records act as the currently-held direction and, if the animation
// loop isn't already running, starts it (grounded on the teacher's
// self-rescheduling tea.Tick retry-backoff loop).
func (m Model) armHold(act action) (tea.Model, tea.Cmd) {
	m.activeAction = act
	m.lastActionAt = now()
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickAnim()
}

func tickAnim() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return animTickMsg{} })
}

// handleAnimTick repeats the active hold action while it's within
// holdWindow of its last keypress, decays shift-held once stale, and stops
// the ticking loop once nothing is active or decaying.
func (m Model) handleAnimTick() (tea.Model, tea.Cmd) {
	t := now()
	holdAlive := m.activeAction != actionNone && t.Sub(m.lastActionAt) < holdWindow
	shiftAlive := m.engine.ShiftHeld() && t.Sub(m.lastShiftKeyAt) < shiftDecayWindow

	if holdAlive {
		switch m.activeAction {
		case actionPanLeft:
			m.engine.Pan(-1)
		case actionPanRight:
			m.engine.Pan(1)
		case actionZoomIn:
			m.engine.ZoomIn()
		case actionZoomOut:
			m.engine.ZoomOut()
		}
	} else {
		m.activeAction = actionNone
	}

	if !shiftAlive && m.engine.ShiftHeld() {
		m.engine.SetShiftHeld(false)
	}

	if !holdAlive && !shiftAlive {
		m.ticking = false
		return m, nil
	}
	return m, tickAnim()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	w, h := m.engine.CanvasSize()
	if w <= 0 || h <= 0 {
		return m, nil
	}
	if msg.Action == tea.MouseActionRelease {
		m.engine.ClearHover()
		return m, nil
	}
	nx := float64(msg.X) / float64(w)
	ny := float64(msg.Y) / float64(h)
	m.engine.HoverAt(nx, ny)
	return m, nil
}

// View renders the current frame's static layer plus overlays onto the
// terminal via the shared cell-grid rasterizer, with the jump-to-variable
// palette composited on top when open.
func (m Model) View() string {
	objs := m.renderer.Render(m.params)
	canvas := render.Paint(objs, m.width, m.height)
	if !m.paletteOpen {
		return canvas
	}
	return canvas + "\n" + m.paletteView()
}

func (m Model) paletteView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(m.width - 4)

	var lines []string
	lines = append(lines, "jump to variable: "+m.paletteQuery)
	const maxShown = 8
	for i, match := range m.paletteMatches {
		if i >= maxShown {
			break
		}
		lines = append(lines, "  "+match.Variable.Id.String())
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// printDebugTooltip renders the hovered value's educational message to
// stderr when Debug is set, adapted from the teacher's glamour-backed
// markdown renderer (internal/doc).
func (m *Model) printDebugTooltip() {
	if !m.Debug || m.tooltip == nil || m.tooltip.EducationalMessage == "" {
		return
	}
	if m.docRenderer == nil {
		m.docRenderer = doc.NewRenderer()
	}
	rendered := m.docRenderer.Render(m.tooltip.EducationalMessage, m.width)
	fmt.Fprintln(os.Stderr, rendered)
}

func now() time.Time { return time.Now() }
