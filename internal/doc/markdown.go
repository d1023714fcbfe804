// ABOUTME: Markdown renderer wrapper around glamour for terminal output
// ABOUTME: Caches rendered results keyed by content hash + width

package doc

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer wraps glamour to render a tooltip's educational message (the
// Z|X|U signal-state explanations, §4.5) as styled markdown, caching
// results by content hash and width since the same handful of messages
// repeat across every hover.
type Renderer struct {
	cache map[string]string // "hash:width" -> rendered
}

// NewRenderer creates a Renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string]string)}
}

// Render returns the terminal-styled rendering of md, wrapped to width.
func (r *Renderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	rendered = strings.TrimRight(rendered, "\n ")

	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
