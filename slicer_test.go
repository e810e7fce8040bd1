package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sliceIDs(a *Automaton, s *Slicer, seeds ...*State) []int {
	var ids []int
	bits := s.Slice(seeds...)
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		ids = append(ids, int(i))
	}
	return ids
}

func TestSlicer(t *testing.T) {
	// 0 -a-> 1 -b-> 2, 3 -c-> 2, 2 -d-> 2
	a := Empty()
	s1 := a.createState(Normal)
	s2 := a.createState(Accept)
	s3 := a.createState(Normal)
	a.addTransition(a.Start(), s1, Char('a'))
	a.addTransition(s1, s2, Char('b'))
	a.addTransition(s3, s2, Char('c'))
	a.addTransition(s2, s2, Char('d'))

	t.Run("forward", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, sliceIDs(a, NewForwardSlicer(a), a.Start()))
		assert.Equal(t, []int{2, 3}, sliceIDs(a, NewForwardSlicer(a), s3))
	})

	t.Run("backward", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2, 3}, sliceIDs(a, NewBackwardSlicer(a), s2))
		assert.Equal(t, []int{0}, sliceIDs(a, NewBackwardSlicer(a), a.Start()))
	})

	t.Run("no seeds", func(t *testing.T) {
		assert.Empty(t, sliceIDs(a, NewForwardSlicer(a)))
	})
}
