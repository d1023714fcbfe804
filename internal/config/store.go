// ABOUTME: JSON-based TimelineConfig persistence; no external libs (§6.4)
// ABOUTME: Atomic write (temp file + rename) mirrors the teacher's auth store

package config

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

// persistedShape is the on-disk JSON representation of collab.PersistedConfig.
type persistedShape struct {
	VisibleRangeStart *timeps.TimePs `json:"visible_range_start,omitempty"`
	VisibleRangeEnd   *timeps.TimePs `json:"visible_range_end,omitempty"`
	CursorPosition    *timeps.TimePs `json:"cursor_position,omitempty"`
	ZoomCenter        *timeps.TimePs `json:"zoom_center,omitempty"`
	TooltipEnabled    bool           `json:"tooltip_enabled"`
}

func toShape(cfg collab.PersistedConfig) persistedShape {
	s := persistedShape{CursorPosition: cfg.CursorPosition, ZoomCenter: cfg.ZoomCenter, TooltipEnabled: cfg.TooltipEnabled}
	if cfg.VisibleRange != nil {
		s.VisibleRangeStart = &cfg.VisibleRange.Start
		s.VisibleRangeEnd = &cfg.VisibleRange.End
	}
	return s
}

func fromShape(s persistedShape) collab.PersistedConfig {
	cfg := collab.PersistedConfig{CursorPosition: s.CursorPosition, ZoomCenter: s.ZoomCenter, TooltipEnabled: s.TooltipEnabled}
	if s.VisibleRangeStart != nil && s.VisibleRangeEnd != nil {
		cfg.VisibleRange = &collab.RangePs{Start: *s.VisibleRangeStart, End: *s.VisibleRangeEnd}
	}
	return cfg
}

// FileConfigStore implements collab.ConfigStore against a single JSON file
// on disk (§6.4). Save is called already-debounced by the Engine, so it
// writes synchronously; Subscribe restores once at registration time.
type FileConfigStore struct {
	path string
	mu   sync.Mutex
}

// NewFileConfigStore constructs a store rooted at path. Use config.ConfigFile()
// for the standard location.
func NewFileConfigStore(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

// Subscribe calls onRestore once with the persisted config if the file
// exists and parses; returns a no-op unsubscribe since there is nothing to
// watch (config restoration happens once, at startup, per §6.4).
func (s *FileConfigStore) Subscribe(onRestore func(collab.PersistedConfig)) func() {
	if cfg, ok := s.load(); ok {
		onRestore(cfg)
	}
	return func() {}
}

func (s *FileConfigStore) load() (collab.PersistedConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return collab.PersistedConfig{}, false
	}
	var shape persistedShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return collab.PersistedConfig{}, false
	}
	return fromShape(shape), true
}

// Save writes cfg to disk atomically (temp file + rename).
func (s *FileConfigStore) Save(cfg collab.PersistedConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := GlobalDir()
	if err := EnsureDir(dir); err != nil {
		return
	}

	data, err := json.MarshalIndent(toShape(cfg), "", "  ")
	if err != nil {
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
	}
}
