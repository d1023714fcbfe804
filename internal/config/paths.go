// ABOUTME: Standard filesystem paths for timeline engine configuration/themes
// ABOUTME: Resolves ~/.wavecore-timeline/ for persisted config and theme assets

package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".wavecore-timeline"

// GlobalDir returns the user-global config directory.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appDirName)
	}
	return filepath.Join(home, appDirName)
}

// ConfigFile returns the path to the persisted TimelineConfig JSON file.
func ConfigFile() string {
	return filepath.Join(GlobalDir(), "timeline.json")
}

// ThemesDir returns the directory searched for YAML theme assets.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}

// ThemeFile returns the path to a named theme asset.
func ThemeFile(name string) string {
	return filepath.Join(ThemesDir(), name+".yaml")
}

// EnsureDir creates path and its parents if missing.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
