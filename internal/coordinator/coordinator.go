// ABOUTME: Request Coordinator (C3): debounce, plan, single in-flight request, merge (§4.3)
// ABOUTME: Supersession by request_id; per-variable circuit breaker and deferred Loading

package coordinator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/log"
	"github.com/wavecore/timeline/internal/timeps"
	"github.com/wavecore/timeline/internal/wire"
)

// EvalInput is a snapshot of the state a plan is built from.
type EvalInput struct {
	Viewport      cache.Range // nanosecond half-open range
	Bucket        timeps.LODBucket
	CanvasWidthPx int
	Variables     []collab.SelectedVariable
	Bounds        *timeps.Bounds
	CursorNs      uint64
}

// valid reports the §7 "invalid request" no-op conditions.
func (in EvalInput) valid() bool {
	return len(in.Variables) > 0 && in.Viewport.Len() > 0 && in.CanvasWidthPx > 0
}

// inflight tracks the per-variable bookkeeping of one outstanding request.
type inflight struct {
	id        uint64
	bucket    timeps.LODBucket
	byID      map[cache.VariableId]cache.Range
	deadlines map[cache.VariableId]*Deadline
	issuedAt  time.Time
}

// Coordinator is the Request Coordinator (C3).
type Coordinator struct {
	cacheStore *cache.Cache
	transport  collab.Transport
	ctx        context.Context

	debouncer *Debouncer
	nextID    atomic.Uint64

	mu            sync.Mutex
	inFlight      *inflight
	breakers      map[cache.VariableId]*breakerState
	emptyUntil    map[cache.VariableId]time.Time
	loadingArmed  map[cache.VariableId]bool
	forcedMissing map[cache.VariableId]bool

	// OnSettled fires after every response that is not superseded, whether
	// it was merged or reported an error, so the Engine can refresh its
	// render snapshot and check reload-restore eligibility (§4.3 response
	// handling).
	OnSettled func()
}

// New constructs a Coordinator bound to a cache and transport.
func New(ctx context.Context, c *cache.Cache, t collab.Transport) *Coordinator {
	return &Coordinator{
		cacheStore:    c,
		transport:     t,
		ctx:           ctx,
		debouncer:     NewDebouncer(RequestDebounce),
		breakers:      make(map[cache.VariableId]*breakerState),
		emptyUntil:    make(map[cache.VariableId]time.Time),
		loadingArmed:  make(map[cache.VariableId]bool),
		forcedMissing: make(map[cache.VariableId]bool),
	}
}

// ScheduleEvaluate debounces evaluation of input by RequestDebounce (§4.3).
func (co *Coordinator) ScheduleEvaluate(input EvalInput) {
	co.debouncer.Trigger(func() { co.evaluate(input) })
}

// LoadingArmed reports whether id's deferred Loading indicator has fired
// (500ms elapsed with no response yet, §4.3 CURSOR_LOADING_DELAY_MS).
func (co *Coordinator) LoadingArmed(id cache.VariableId) bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.loadingArmed[id]
}

// ForcedMissing reports whether id was marked Missing by a transport error
// and has not yet been re-requested (§7).
func (co *Coordinator) ForcedMissing(id cache.VariableId) bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.forcedMissing[id]
}

func (co *Coordinator) evaluate(input EvalInput) {
	if !input.valid() {
		return // §7 invalid request: no-op, no user-visible change
	}

	now := time.Now()
	plans := BuildPlan(co.cacheStore, input.Variables, input.Bucket, input.Viewport, input.Bounds)

	co.mu.Lock()
	toFetch := make(map[cache.VariableId]cache.Range)
	for _, p := range plans {
		if p.Fetch == nil {
			continue
		}
		if co.skipLocked(p.Id, now) {
			continue
		}
		toFetch[p.Id] = *p.Fetch
		delete(co.forcedMissing, p.Id)
	}
	co.mu.Unlock()

	if len(toFetch) == 0 {
		return
	}

	co.issueRequest(input, toFetch)
}

// skipLocked reports whether either independent gate says to skip a fetch
// for id: the circuit breaker, or the 5s empty-result TTL cache (§4.3, §9
// Open Question #1 — either gate alone is sufficient to skip).
func (co *Coordinator) skipLocked(id cache.VariableId, now time.Time) bool {
	if b, ok := co.breakers[id]; ok && b.shouldSkip(now) {
		return true
	}
	if until, ok := co.emptyUntil[id]; ok && now.Before(until) {
		return true
	}
	return false
}

func (co *Coordinator) issueRequest(input EvalInput, toFetch map[cache.VariableId]cache.Range) {
	reqID := co.nextID.Add(1)

	req := &inflight{
		id:        reqID,
		bucket:    input.Bucket,
		byID:      toFetch,
		deadlines: make(map[cache.VariableId]*Deadline, len(toFetch)),
		issuedAt:  time.Now(),
	}

	query := wire.UnifiedSignalQuery{
		CursorTimeNs: input.CursorNs,
		RequestId:    reqID,
	}

	byVar := make(map[cache.VariableId]collab.SelectedVariable, len(input.Variables))
	for _, v := range input.Variables {
		byVar[v.Id] = v
	}

	for id, r := range toFetch {
		sv := byVar[id]
		query.Requests = append(query.Requests, wire.VariableRequest{
			FilePath:       id.FilePath,
			ScopePath:      id.ScopePath,
			VariableName:   id.Variable,
			TimeRangeNs:    [2]uint64{r.Start, r.End},
			MaxTransitions: 4 * input.CanvasWidthPx,
			Format:         int(sv.Formatter),
		})
	}

	co.mu.Lock()
	co.inFlight = req
	for id := range toFetch {
		capturedID := id
		req.deadlines[id] = After(CursorLoadingDelay, func() {
			co.mu.Lock()
			stillPending := co.inFlight == req
			if stillPending {
				co.loadingArmed[capturedID] = true
			}
			co.mu.Unlock()
		})
	}
	co.mu.Unlock()

	co.transport.Send(co.ctx, query, func(resp wire.QueryResponse) {
		co.handleResponse(req, resp)
	})
}

func (co *Coordinator) handleResponse(req *inflight, resp wire.QueryResponse) {
	co.mu.Lock()
	if co.inFlight == nil || co.inFlight.id != req.id {
		co.mu.Unlock()
		return // superseded: a newer request_id is in flight (§4.3 invariant)
	}
	for id, dl := range req.deadlines {
		dl.Cancel()
		delete(co.loadingArmed, id)
	}
	co.inFlight = nil
	co.mu.Unlock()

	log.Slow("signal query round trip", time.Since(req.issuedAt))

	if resp.IsError() {
		co.handleError(req)
	} else {
		co.handleSuccess(req, resp)
	}

	if co.OnSettled != nil {
		co.OnSettled()
	}
}

func (co *Coordinator) handleError(req *inflight) {
	now := time.Now()
	co.mu.Lock()
	for id := range req.byID {
		co.forcedMissing[id] = true
	}
	co.mu.Unlock()
	log.Warn("coordinator: request %d failed, marking %d variable(s) Missing", req.id, len(req.byID))
	_ = now
}

func (co *Coordinator) handleSuccess(req *inflight, resp wire.QueryResponse) {
	now := time.Now()
	for _, sig := range resp.Signals {
		id, err := cache.ParseVariableId(sig.UniqueId)
		if err != nil {
			continue
		}
		r, requested := req.byID[id]
		if !requested {
			continue
		}
		if sig.ActualRangeNs != nil {
			r = cache.Range{Start: sig.ActualRangeNs[0], End: sig.ActualRangeNs[1]}
		}

		co.cacheStore.Merge(id, req.bucket, r, sig.Transitions)

		co.mu.Lock()
		b := co.breakerFor(id)
		if len(sig.Transitions) == 0 {
			b.recordEmpty(now)
			co.emptyUntil[id] = now.Add(emptyResultTTL)
		} else {
			b.recordSuccess()
			delete(co.emptyUntil, id)
		}
		co.mu.Unlock()
	}
}

// breakerFor returns (creating if absent) the breaker for id. Caller holds co.mu.
func (co *Coordinator) breakerFor(id cache.VariableId) *breakerState {
	b, ok := co.breakers[id]
	if !ok {
		b = &breakerState{}
		co.breakers[id] = b
	}
	return b
}

// InFlightCount reports whether a request is currently outstanding (0 or 1,
// §4.3 invariant "cardinality <= 1").
func (co *Coordinator) InFlightCount() int {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.inFlight == nil {
		return 0
	}
	return 1
}
