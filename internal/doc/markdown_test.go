package doc

import "testing"

func TestRenderEmptyReturnsEmpty(t *testing.T) {
	t.Parallel()
	r := NewRenderer()
	if got := r.Render("", 80); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}

func TestRenderCachesByContentAndWidth(t *testing.T) {
	t.Parallel()
	r := NewRenderer()
	first := r.Render("**Z** is high-impedance", 40)
	if first == "" {
		t.Fatal("expected non-empty rendering")
	}
	second := r.Render("**Z** is high-impedance", 40)
	if first != second {
		t.Errorf("expected cached render to match, got %q vs %q", first, second)
	}
	if len(r.cache) != 1 {
		t.Errorf("cache size = %d, want 1", len(r.cache))
	}

	r.Render("**Z** is high-impedance", 20)
	if len(r.cache) != 2 {
		t.Errorf("cache size after width change = %d, want 2", len(r.cache))
	}
}
