package automaton

import "github.com/bits-and-blooms/bitset"

// Slicer computes the set of states reachable from a seed set by repeatedly following one
// neighbor relation.
type Slicer struct {
	a    *Automaton
	next func(s *State) []*State
}

// NewForwardSlicer follows transitions from source to target.
func NewForwardSlicer(a *Automaton) *Slicer {
	return &Slicer{a: a, next: func(s *State) []*State {
		trans := a.out[s.id]
		result := make([]*State, len(trans))
		for i, t := range trans {
			result[i] = t.Target
		}
		return result
	}}
}

// NewBackwardSlicer follows transitions from target to source.
func NewBackwardSlicer(a *Automaton) *Slicer {
	return &Slicer{a: a, next: func(s *State) []*State {
		trans := a.in[s.id]
		result := make([]*State, len(trans))
		for i, t := range trans {
			result[i] = t.Source
		}
		return result
	}}
}

// Slice Returns the ids of all states reachable from seeds, seeds included.
func (r *Slicer) Slice(seeds ...*State) *bitset.BitSet {
	visited := bitset.New(uint(r.a.nextID))
	workList := make([]*State, 0, len(seeds))
	workList = append(workList, seeds...)

	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if visited.Test(uint(s.id)) {
			continue
		}
		visited.Set(uint(s.id))
		for _, n := range r.next(s) {
			if !visited.Test(uint(n.id)) {
				workList = append(workList, n)
			}
		}
	}
	return visited
}
