// ABOUTME: Engine is the Timeline State (C4): cursor/viewport/zoom-center/tooltip
// ABOUTME: owner, wiring the Timeline Cache (C2) and Request Coordinator (C3) together

package state

import (
	"context"
	"sync"
	"time"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/coordinator"
	"github.com/wavecore/timeline/internal/eventbus"
	"github.com/wavecore/timeline/internal/log"
	"github.com/wavecore/timeline/internal/render"
	"github.com/wavecore/timeline/internal/timeps"
)

// defaultViewportEnd is the 1-second fallback viewport used whenever bounds
// are unknown (§6.1, §8 scenario 1).
var defaultViewportEnd = timeps.FromSeconds(1)

// Dependencies wires the Engine to its five external collaborators (§6).
// Bounds, Variables, Reload, and Config may be nil for headless/test use;
// Cache defaults to cache.New() when nil; Transport is required.
type Dependencies struct {
	Cache     *cache.Cache // New() used when nil
	Transport collab.Transport
	Bounds    collab.BoundsSource
	Variables collab.VariablesSource
	Reload    collab.ReloadLifecycle
	Config    collab.ConfigStore
	Theme     render.Theme
}

type reloadSnapshot struct {
	viewport timeps.Viewport
	cursor   timeps.TimePs
}

// Engine owns all C4 state and publishes RenderParameters/TooltipData
// snapshots. It is safe for concurrent use: coordinator callbacks and
// debounce timers arrive on their own goroutines (§5 describes a single
// logical task loop at the application layer; the Engine guards its own
// fields with a mutex so that callback goroutines never race the caller).
type Engine struct {
	mu sync.Mutex

	cacheStore  *cache.Cache
	coordinator *coordinator.Coordinator
	configStore collab.ConfigStore
	theme       render.Theme

	bounds   *timeps.Bounds
	viewport timeps.Viewport
	cursor   timeps.TimePs

	zoomCenter timeps.TimePs
	zoomRate   *zoomCenterLimiter

	canvasW, canvasH int
	shiftHeld        bool
	tooltipEnabled   bool
	configRestored   bool

	variables []collab.SelectedVariable

	reloadPending  bool
	reloadSnapshot *reloadSnapshot
	reloadingFiles map[string]bool

	revision uint64

	hoverActive bool
	hoverX      float64
	hoverY      float64
	tooltip     *render.TooltipData

	configSave *coordinator.Debouncer

	paramsBus  *eventbus.Bus[render.Parameters]
	tooltipBus *eventbus.Bus[*render.TooltipData]

	unsub []func()
}

// New constructs an Engine in the §6.1/§8-scenario-1 default state: no
// bounds, empty variable set, viewport=[0,1s], cursor at the midpoint.
func New(ctx context.Context, deps Dependencies) *Engine {
	c := deps.Cache
	if c == nil {
		c = cache.New()
	}
	theme := deps.Theme
	if theme.Key == "" {
		theme = render.DefaultTheme()
	}

	e := &Engine{
		cacheStore:     c,
		configStore:    deps.Config,
		theme:          theme,
		reloadingFiles: make(map[string]bool),
		paramsBus:      eventbus.New[render.Parameters](),
		tooltipBus:     eventbus.New[*render.TooltipData](),
		configSave:     coordinator.NewDebouncer(coordinator.ConfigSaveDebounce),
	}
	e.resetToNoDataLocked()
	e.zoomRate = newZoomCenterLimiter(coordinator.ZoomCenterMinInterval, e.applyZoomCenter)

	e.coordinator = coordinator.New(ctx, c, deps.Transport)
	e.coordinator.OnSettled = e.onCoordinatorSettled

	if deps.Bounds != nil {
		e.unsub = append(e.unsub, deps.Bounds.Subscribe(e.SetBounds))
	}
	if deps.Variables != nil {
		e.unsub = append(e.unsub, deps.Variables.Subscribe(e.SetVariables))
	}
	if deps.Reload != nil {
		e.unsub = append(e.unsub, deps.Reload.OnReloadStarted(e.ReloadStarted))
		e.unsub = append(e.unsub, deps.Reload.OnReloadCompleted(e.ReloadCompleted))
	}
	if deps.Config != nil {
		e.unsub = append(e.unsub, deps.Config.Subscribe(e.RestoreConfig))
	}

	return e
}

// Close releases every collaborator subscription. The Engine itself holds
// no other external resources (§9 "no ownership cycle").
func (e *Engine) Close() {
	for _, fn := range e.unsub {
		fn()
	}
	e.unsub = nil
	e.configSave.Cancel()
	e.zoomRate.Reset()
}

// resetToNoDataLocked applies the §6.1/§8-scenario-1 default. Caller holds e.mu.
func (e *Engine) resetToNoDataLocked() {
	e.viewport = timeps.Viewport{Start: 0, End: defaultViewportEnd}
	e.cursor = e.viewport.Center()
	e.zoomCenter = 0
	e.bumpRevisionLocked()
}

func (e *Engine) bumpRevisionLocked() {
	e.revision++
}

// Params returns the bus observers subscribe to for RenderParameters snapshots.
func (e *Engine) Params() *eventbus.Bus[render.Parameters] { return e.paramsBus }

// Tooltip returns the bus observers subscribe to for TooltipData snapshots.
func (e *Engine) Tooltip() *eventbus.Bus[*render.TooltipData] { return e.tooltipBus }

// SetCanvasSize updates the canvas dimensions driving viewport-to-pixel
// mapping and the minimum viewable duration (§4.4).
func (e *Engine) SetCanvasSize(w, h int) {
	if w <= 0 || h <= 0 {
		return // §7 invalid request: no-op
	}
	e.mu.Lock()
	e.canvasW, e.canvasH = w, h
	e.enforceMinDurationLocked()
	e.bumpRevisionLocked()
	e.mu.Unlock()

	e.refreshAndPublish()
	e.scheduleEvaluate()
	e.scheduleConfigSave()
}

// enforceMinDurationLocked expands the viewport around its center if the
// new canvas width raises the minimum viewable duration above the current
// one (§4.4, §8 "minimum duration" invariant). Caller holds e.mu.
func (e *Engine) enforceMinDurationLocked() {
	min := timeps.MinDurationForWidth(e.canvasW)
	if e.viewport.Duration() >= min {
		return
	}
	center := e.viewport.Center()
	half := timeps.TimePs(uint64(min) / 2)
	start := center.Sub(half)
	end := start.Add(min)
	vp, err := timeps.New(start, end)
	if err != nil {
		vp = timeps.Viewport{Start: center, End: center.Add(min)}
	}
	if e.bounds != nil {
		vp = e.bounds.Clamp(vp)
	}
	e.viewport = vp
}

// SetShiftHeld tracks live shift-modifier state (§4.6).
func (e *Engine) SetShiftHeld(held bool) {
	e.mu.Lock()
	e.shiftHeld = held
	e.mu.Unlock()
}

// SetTooltipEnabled toggles the tooltip feature (`T` key, §4.6).
func (e *Engine) SetTooltipEnabled(enabled bool) {
	e.mu.Lock()
	e.tooltipEnabled = enabled
	if !enabled {
		e.tooltip = nil
	}
	e.mu.Unlock()
	e.publishTooltip()
	e.scheduleConfigSave()
}

// ToggleTooltip flips the tooltip-enabled flag.
func (e *Engine) ToggleTooltip() {
	e.mu.Lock()
	enabled := !e.tooltipEnabled
	e.mu.Unlock()
	e.SetTooltipEnabled(enabled)
}

// refreshAndPublish recomputes per-variable cursor values, publishes a new
// RenderParameters snapshot, and recomputes the tooltip if hover is active.
func (e *Engine) refreshAndPublish() {
	start := time.Now()
	e.mu.Lock()
	params := e.buildParametersLocked()
	e.mu.Unlock()

	log.Debug("state: publishing render snapshot revision=%d variables=%d", params.Revision, len(params.Variables))
	e.paramsBus.Publish(params)
	e.recomputeTooltip()
	log.Slow("render snapshot refresh", time.Since(start))
}

func (e *Engine) scheduleConfigSave() {
	if e.configStore == nil {
		return
	}
	e.configSave.Trigger(func() {
		e.mu.Lock()
		cfg := e.persistedConfigLocked()
		e.mu.Unlock()
		e.configStore.Save(cfg)
	})
}

func (e *Engine) persistedConfigLocked() collab.PersistedConfig {
	start, end := e.viewport.Start, e.viewport.End
	cursor := e.cursor
	zoom := e.zoomCenter
	return collab.PersistedConfig{
		VisibleRange:   &collab.RangePs{Start: start, End: end},
		CursorPosition: &cursor,
		ZoomCenter:     &zoom,
		TooltipEnabled: e.tooltipEnabled,
	}
}
