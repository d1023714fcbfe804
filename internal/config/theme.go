// ABOUTME: YAML theme asset loading, adapted from the teacher's profiles.go shape
// ABOUTME: A themeDoc maps 1:1 onto render.Theme's lipgloss.Color fields

package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/wavecore/timeline/internal/render"
	"gopkg.in/yaml.v3"
)

// themeDoc is the on-disk YAML shape for a theme asset. Colors are hex
// strings; any unset field falls back to render.DefaultTheme()'s value.
type themeDoc struct {
	Name string `yaml:"name"`

	RowBgEven string `yaml:"row_bg_even"`
	RowBgOdd  string `yaml:"row_bg_odd"`
	Separator string `yaml:"separator"`

	Low            string `yaml:"low"`
	High           string `yaml:"high"`
	Bus            string `yaml:"bus"`
	HighImpedance  string `yaml:"high_impedance"`
	Unknown        string `yaml:"unknown"`
	Uninitialized  string `yaml:"uninitialized"`
	MixedHighlight string `yaml:"mixed_highlight"`

	SegmentAltMultiplier float64 `yaml:"segment_alt_multiplier"`

	AxisBg    string `yaml:"axis_bg"`
	AxisTick  string `yaml:"axis_tick"`
	AxisLabel string `yaml:"axis_label"`

	Cursor     string `yaml:"cursor"`
	ZoomCenter string `yaml:"zoom_center"`
}

// LoadTheme reads a YAML theme asset from path, filling any field the
// document omits from render.DefaultTheme().
func LoadTheme(path string) (render.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}

	var doc themeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return render.Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}

	theme := render.DefaultTheme()
	if doc.Name != "" {
		theme.Key = doc.Name
	}
	overlayColor(&theme.RowBgEven, doc.RowBgEven)
	overlayColor(&theme.RowBgOdd, doc.RowBgOdd)
	overlayColor(&theme.Separator, doc.Separator)
	overlayColor(&theme.Low, doc.Low)
	overlayColor(&theme.High, doc.High)
	overlayColor(&theme.Bus, doc.Bus)
	overlayColor(&theme.HighImpedance, doc.HighImpedance)
	overlayColor(&theme.Unknown, doc.Unknown)
	overlayColor(&theme.Uninitialized, doc.Uninitialized)
	overlayColor(&theme.MixedHighlight, doc.MixedHighlight)
	overlayColor(&theme.AxisBg, doc.AxisBg)
	overlayColor(&theme.AxisTick, doc.AxisTick)
	overlayColor(&theme.AxisLabel, doc.AxisLabel)
	overlayColor(&theme.Cursor, doc.Cursor)
	overlayColor(&theme.ZoomCenter, doc.ZoomCenter)
	if doc.SegmentAltMultiplier > 0 {
		theme.SegmentAltMultiplier = doc.SegmentAltMultiplier
	}

	return theme, nil
}

func overlayColor(dst *lipgloss.Color, v string) {
	if v != "" {
		*dst = lipgloss.Color(v)
	}
}
