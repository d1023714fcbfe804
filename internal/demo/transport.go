// ABOUTME: In-process collab.Transport backed by the synthetic fixture
// ABOUTME: Answers every query synchronously; stands in for a real backend

package demo

import (
	"context"

	"github.com/wavecore/timeline/internal/wire"
)

// Transport answers UnifiedSignalQuery requests with Generate's synthetic
// waveforms, satisfying collab.Transport without a real VCD/FST backend.
type Transport struct{}

// Send generates transitions for every requested variable and invokes
// onResponse synchronously (the demo has no real network round trip).
func (Transport) Send(_ context.Context, q wire.UnifiedSignalQuery, onResponse func(wire.QueryResponse)) {
	resp := wire.QueryResponse{RequestId: q.RequestId}
	for _, req := range q.Requests {
		transitions := Generate(req.VariableName, req.TimeRangeNs[0], req.TimeRangeNs[1])
		resp.Signals = append(resp.Signals, wire.SignalResponse{
			UniqueId:    req.FilePath + "|" + req.ScopePath + "|" + req.VariableName,
			Transitions: transitions,
		})
	}
	onResponse(resp)
}
