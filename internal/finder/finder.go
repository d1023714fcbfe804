// ABOUTME: Fuzzy "jump to variable" search over the selected variable set
// ABOUTME: Thin wrapper over sahilm/fuzzy, adapted from pkg/tui/fuzzy's shape

package finder

import (
	"github.com/sahilm/fuzzy"
	"github.com/wavecore/timeline/internal/collab"
)

// Match pairs a selected variable with its fuzzy match metadata.
type Match struct {
	Variable       collab.SelectedVariable
	MatchedIndexes []int
	Score          int
}

// variableSource adapts a []collab.SelectedVariable slice to fuzzy.Source,
// matching against each variable's fully-qualified id string.
type variableSource []collab.SelectedVariable

func (s variableSource) String(i int) string { return s[i].Id.String() }
func (s variableSource) Len() int             { return len(s) }

// Find ranks variables by fuzzy match against pattern, best first. An empty
// pattern returns every variable unranked, in its original order.
func Find(pattern string, variables []collab.SelectedVariable) []Match {
	if pattern == "" {
		out := make([]Match, len(variables))
		for i, v := range variables {
			out[i] = Match{Variable: v}
		}
		return out
	}

	results := fuzzy.FindFrom(pattern, variableSource(variables))
	out := make([]Match, len(results))
	for i, r := range results {
		out[i] = Match{
			Variable:       variables[r.Index],
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return out
}
