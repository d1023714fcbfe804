package config

import (
	"path/filepath"
	"testing"

	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

func TestFileConfigStoreSaveThenSubscribeRoundTrips(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "timeline.json")
	s := NewFileConfigStore(path)

	cursor := timeps.FromNanos(500)
	zoom := timeps.FromNanos(250)
	cfg := collab.PersistedConfig{
		VisibleRange:   &collab.RangePs{Start: 0, End: timeps.FromNanos(1000)},
		CursorPosition: &cursor,
		ZoomCenter:     &zoom,
		TooltipEnabled: true,
	}
	s.Save(cfg)

	var got collab.PersistedConfig
	unsub := s.Subscribe(func(restored collab.PersistedConfig) { got = restored })
	defer unsub()

	if got.VisibleRange == nil || got.VisibleRange.End != timeps.FromNanos(1000) {
		t.Fatalf("visible range not restored: %+v", got.VisibleRange)
	}
	if got.CursorPosition == nil || *got.CursorPosition != cursor {
		t.Errorf("cursor not restored: %+v", got.CursorPosition)
	}
	if !got.TooltipEnabled {
		t.Error("tooltip_enabled not restored")
	}
}

func TestFileConfigStoreSubscribeNoOpWhenFileMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := NewFileConfigStore(filepath.Join(dir, "missing.json"))

	called := false
	unsub := s.Subscribe(func(collab.PersistedConfig) { called = true })
	defer unsub()

	if called {
		t.Error("expected no restore callback when the config file does not exist")
	}
}
