package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAutomaton(t *testing.T) {
	a := mustRegExp(t, "[a-c]+x?|zz")
	r := NewRunAutomaton(a)

	assert.Equal(t, a.NumStates(), r.NumStates())
	assert.False(t, r.IsAccept(0))

	for _, s := range enumerate("abxz", 4) {
		assert.Equalf(t, a.Matches(s), r.Run(s), "input %q", s)
	}

	assert.Equal(t, -1, r.Step(0, 'x'))
	next := r.Step(0, 'b')
	assert.NotEqual(t, -1, next)
	assert.True(t, r.IsAccept(next))
}

func TestRunAutomaton_FromNFA(t *testing.T) {
	s0, s1, s2 := NewState(Normal), NewState(Normal), NewState(Accept)
	nfa, err := FromStartAndTransitions(s0, []*Transition{
		NewTransition(s0, s1, Epsilon()),
		NewTransition(s0, s2, Char('a')),
		NewTransition(s1, s2, Char('a')),
		NewTransition(s2, s2, Char('b')),
	})
	assert.NoError(t, err)

	r := NewRunAutomaton(nfa)
	assert.Equal(t, 2, r.NumStates())
	assert.True(t, r.Run("abb"))
	assert.False(t, r.Run("b"))

	// The source automaton is not modified.
	assert.Equal(t, 3, nfa.NumStates())
}

func TestRunAutomaton_EmptyLanguage(t *testing.T) {
	r := NewRunAutomaton(Empty())
	assert.Equal(t, 1, r.NumStates())
	assert.False(t, r.Run(""))
	assert.False(t, r.Run("a"))
}

func TestByteRunAutomaton(t *testing.T) {
	r := NewByteRunAutomaton(mustRegExp(t, "ab*c"))
	assert.True(t, r.Run([]byte("ac")))
	assert.True(t, r.Run([]byte("abbbc")))
	assert.False(t, r.Run([]byte("ab")))
	assert.False(t, r.Run(nil))
}
