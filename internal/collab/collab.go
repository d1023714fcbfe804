// ABOUTME: Go-facing contracts toward the five external collaborators (§6)
// ABOUTME: File parsing, UI panels, config storage, and transport live outside this core

package collab

import (
	"context"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/timeps"
	"github.com/wavecore/timeline/internal/wire"
)

// SelectedVariable is one entry of the selected-variables source (§6.2).
type SelectedVariable struct {
	Id        cache.VariableId
	Formatter cache.Format
}

// BoundsSource emits the union of selected variables' time extents on
// change. A nil *Bounds means "no data" (§6.1).
type BoundsSource interface {
	Subscribe(onChange func(*timeps.Bounds)) (unsubscribe func())
}

// VariablesSource emits the full selected-variable set on change. Duplicate
// ids are forbidden by contract; insertion order is irrelevant (§6.2).
type VariablesSource interface {
	Subscribe(onChange func([]SelectedVariable)) (unsubscribe func())
}

// ReloadLifecycle carries the two file-reload streams (§6.3).
type ReloadLifecycle interface {
	OnReloadStarted(onStart func(filePath string)) (unsubscribe func())
	OnReloadCompleted(onComplete func(fileId string)) (unsubscribe func())
}

// PersistedConfig is the shape persisted/restored by the ConfigStore (§6.4).
type PersistedConfig struct {
	VisibleRange   *RangePs
	CursorPosition *timeps.TimePs
	ZoomCenter     *timeps.TimePs
	TooltipEnabled bool
}

// RangePs is a persisted [Start,End) picosecond range.
type RangePs struct {
	Start timeps.TimePs
	End   timeps.TimePs
}

// ConfigStore emits PersistedConfig at startup/restore and accepts a
// debounced write-back of the same shape on every state mutation (§6.4).
type ConfigStore interface {
	Subscribe(onRestore func(PersistedConfig)) (unsubscribe func())
	Save(cfg PersistedConfig)
}

// Transport sends a batched query and returns the matching response
// asynchronously via the callback. The coordinator may send again before an
// earlier response arrives; it applies only the response to its latest
// send (§6.5, §4.3).
type Transport interface {
	Send(ctx context.Context, q wire.UnifiedSignalQuery, onResponse func(wire.QueryResponse))
}
