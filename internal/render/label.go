// ABOUTME: Grapheme-aware label measurement and truncation (§4.5 value labels)
// ABOUTME: Grounded on width.VisibleWidth: uniseg clusters + go-runewidth cell widths

package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the terminal cell width of s, accounting for
// grapheme clusters that occupy more than one column. Waveform labels are
// short (formatted values, tick numbers) so, unlike a terminal's full-line
// renderer, no cache is needed here — the ASCII fast path covers the
// overwhelming majority of calls anyway.
func VisibleWidth(s string) int {
	if isASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		w += clusterWidth(cluster)
		rest = next
		state = newState
	}
	return w
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	width := 0
	for _, r := range cluster {
		width = runewidth.RuneWidth(r)
		break
	}
	return width
}

// TruncateLabel truncates s to at most maxChars grapheme clusters,
// appending an ellipsis when truncation actually occurs (§4.5: "truncated
// to floor(width/7) characters").
func TruncateLabel(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	var b strings.Builder
	count := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		if count == maxChars {
			return b.String() + "…" // rest is non-empty: truncation occurred
		}
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(cluster)
		count++
		rest = next
		state = newState
	}
	return b.String()
}

// FormatSegmentValue buckets a raw numeric-looking value to 0-3 decimals by
// magnitude and strips trailing zeros/dot (§4.5 value-label formatting).
// Non-numeric raw values (Z/X/U/bus strings) pass through unchanged.
func FormatSegmentValue(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	decimals := decimalsForMagnitude(f)
	s := strconv.FormatFloat(f, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

func decimalsForMagnitude(f float64) int {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 100:
		return 0
	case abs >= 10:
		return 1
	case abs >= 1:
		return 2
	default:
		return 3
	}
}
