package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize_UnionOfChars(t *testing.T) {
	a := defaultAutomata.MakeChar('a').Union(defaultAutomata.MakeChar('b'))
	a.Minimize()

	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, 1, a.NumTransitions())
	assertMatches(t, a, []string{"a", "b"}, []string{"", "c", "ab"})
}

func TestMinimize_Classic(t *testing.T) {
	a := mustRegExp(t, "(a|b)*abb")
	assert.Equal(t, 4, a.NumStates())
	assertMatches(t, a, []string{"abb", "aabb", "babb", "ababb"}, []string{"", "ab", "abba", "bb"})
}

func TestMinimize_RemovesUselessStates(t *testing.T) {
	s0, s1, dead, unreachable := NewState(Normal), NewState(Accept), NewState(Normal), NewState(Accept)
	a, err := FromStartAndTransitions(s0, []*Transition{
		NewTransition(s0, s1, Char('a')),
		NewTransition(s0, dead, Char('b')),
		NewTransition(dead, dead, Char('c')),
		NewTransition(unreachable, s1, Char('d')),
	})
	require.NoError(t, err)

	a.Minimize()

	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, 1, a.NumTransitions())
	assertMatches(t, a, []string{"a"}, []string{"b", "bc", ""})
}

func TestMinimize_EmptyLanguage(t *testing.T) {
	s0, s1 := NewState(Normal), NewState(Normal)
	a, err := FromStartAndTransitions(s0, []*Transition{
		NewTransition(s0, s1, Char('a')),
		NewTransition(s1, s0, Char('b')),
	})
	require.NoError(t, err)

	a.Minimize()

	assert.Equal(t, 1, a.NumStates())
	assert.Equal(t, 0, a.NumTransitions())
	assert.True(t, a.IsEmptyLanguage())
}

func TestMinimize_Idempotent(t *testing.T) {
	for _, expr := range []string{"(a|b)*abb", "a+b?c{1,3}", "[a-c]*&a.*", "ab|ac|ad"} {
		t.Run(expr, func(t *testing.T) {
			a := mustRegExp(t, expr)
			before := a.Copy()
			states, transitions := a.NumStates(), a.NumTransitions()

			a.Minimize()

			assert.Equal(t, states, a.NumStates())
			assert.Equal(t, transitions, a.NumTransitions())
			assertSameLanguage(t, before, a, "abcd", 4)
		})
	}
}

func TestMinimize_EpsilonInput(t *testing.T) {
	s0, s1, s2 := NewState(Normal), NewState(Normal), NewState(Accept)
	a, err := FromStartAndTransitions(s0, []*Transition{
		NewTransition(s0, s1, Epsilon()),
		NewTransition(s1, s2, Char('a')),
		NewTransition(s0, s2, Char('a')),
	})
	require.NoError(t, err)

	a.Minimize()

	assert.False(t, a.hasEpsilons())
	assert.Equal(t, 2, a.NumStates())
	assertMatches(t, a, []string{"a"}, []string{"", "aa"})
}
