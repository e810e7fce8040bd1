package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, lo, hi int) *Automaton {
	t.Helper()
	a, err := defaultAutomata.MakeCharRange(lo, hi)
	require.NoError(t, err)
	return a
}

func mustRegExp(t *testing.T, expr string) *Automaton {
	t.Helper()
	re, err := NewRegExp(expr)
	require.NoError(t, err)
	a, err := re.ToAutomaton()
	require.NoError(t, err)
	return a
}

// enumerate Returns every string over alphabet with length at most maxLen.
func enumerate(alphabet string, maxLen int) []string {
	result := []string{""}
	frontier := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, prefix := range frontier {
			for _, c := range alphabet {
				next = append(next, prefix+string(c))
			}
		}
		result = append(result, next...)
		frontier = next
	}
	return result
}

func assertSameLanguage(t *testing.T, want, got *Automaton, alphabet string, maxLen int) {
	t.Helper()
	for _, s := range enumerate(alphabet, maxLen) {
		assert.Equalf(t, want.Matches(s), got.Matches(s), "input %q", s)
	}
}

func assertMatches(t *testing.T, a *Automaton, accept, reject []string) {
	t.Helper()
	for _, s := range accept {
		assert.Truef(t, a.Matches(s), "expected %q to match", s)
	}
	for _, s := range reject {
		assert.Falsef(t, a.Matches(s), "expected %q not to match", s)
	}
}

// assertDisjointLabels checks that every state has epsilon-free, pairwise disjoint outgoing labels.
func assertDisjointLabels(t *testing.T, a *Automaton) {
	t.Helper()
	for _, s := range a.States() {
		trans := a.Outgoing(s)
		for i, tr := range trans {
			assert.Falsef(t, tr.Label.IsEpsilon(), "epsilon transition %v", tr)
			if i > 0 {
				assert.Lessf(t, trans[i-1].Label.Max(), tr.Label.Min(), "overlap between %v and %v", trans[i-1], tr)
			}
		}
	}
}
