package finder

import (
	"testing"

	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
)

func testVariables() []collab.SelectedVariable {
	return []collab.SelectedVariable{
		{Id: cache.MustParseVariableId("top.vcd|tb.dut|clk")},
		{Id: cache.MustParseVariableId("top.vcd|tb.dut|reset_n")},
		{Id: cache.MustParseVariableId("top.vcd|tb.dut|data_bus")},
	}
}

func TestFindEmptyPatternReturnsAllUnranked(t *testing.T) {
	t.Parallel()
	vars := testVariables()
	matches := Find("", vars)
	if len(matches) != len(vars) {
		t.Fatalf("len(matches) = %d, want %d", len(matches), len(vars))
	}
	for i, m := range matches {
		if m.Variable.Id != vars[i].Id {
			t.Errorf("match[%d] = %+v, want %+v", i, m.Variable, vars[i])
		}
	}
}

func TestFindRanksClosestMatchFirst(t *testing.T) {
	t.Parallel()
	vars := testVariables()
	matches := Find("clk", vars)
	if len(matches) == 0 {
		t.Fatal("expected at least one match for \"clk\"")
	}
	if matches[0].Variable.Id.Variable != "clk" {
		t.Errorf("best match = %q, want clk", matches[0].Variable.Id.Variable)
	}
}

func TestFindNoMatchReturnsEmpty(t *testing.T) {
	t.Parallel()
	matches := Find("zzzzzz_no_such_signal", testVariables())
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}
