// ABOUTME: Wire types for the signal-query transport (§6), JSON-encodable
// ABOUTME: encoding/json only, matching the ambient config package's convention

package wire

import "github.com/wavecore/timeline/internal/cache"

// VariableRequest is one variable's slice of a UnifiedSignalQuery.
type VariableRequest struct {
	FilePath       string    `json:"file_path"`
	ScopePath      string    `json:"scope_path"`
	VariableName   string    `json:"variable_name"`
	TimeRangeNs    [2]uint64 `json:"time_range_ns"` // half-open [start, end)
	MaxTransitions int       `json:"max_transitions"`
	Format         int       `json:"format"`
}

// UnifiedSignalQuery is the single batched request envelope (§4.3, §6).
type UnifiedSignalQuery struct {
	Requests     []VariableRequest `json:"requests"`
	CursorTimeNs uint64            `json:"cursor_time_ns"`
	RequestId    uint64            `json:"request_id"`
}

// SignalResponse carries one variable's returned transitions.
type SignalResponse struct {
	UniqueId      string                   `json:"unique_id"`
	Transitions   []cache.SignalTransition `json:"transitions"`
	ActualRangeNs *[2]uint64               `json:"actual_range_ns,omitempty"`
}

// CursorValueWire is the wire form of a SignalValue: Kind selects the
// state, and Present carries the value only when Kind is "present".
type CursorValueWire struct {
	Kind    string `json:"kind"` // "present" | "loading" | "missing"
	Present string `json:"present,omitempty"`
}

// QueryResponse is the reply to a UnifiedSignalQuery, or an error carrying
// the same RequestId (§6).
type QueryResponse struct {
	RequestId    uint64                     `json:"request_id"`
	Signals      []SignalResponse           `json:"signals,omitempty"`
	CursorValues map[string]CursorValueWire `json:"cursor_values,omitempty"`
	Err          string                     `json:"error,omitempty"`
}

// IsError reports whether this response represents a transport failure (§7).
func (r QueryResponse) IsError() bool { return r.Err != "" }
