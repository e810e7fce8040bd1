package automaton

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"
)

// Minimize Minimizes the automaton in place: states that are unreachable from the start or cannot
// reach an accept state are removed, then language-equivalent states are merged. An automaton with
// epsilon transitions is determinized first. The receiver must not be shared.
func (a *Automaton) Minimize() {
	before := a.NumStates()
	if a.hasEpsilons() {
		*a = *a.Determinize()
	}

	a.removeUselessStates()
	if a.NumStates() == 1 {
		a.finishState(a.start)
		return
	}

	classes := a.equivalenceClasses()
	for _, group := range classes {
		a.mergeAll(group)
	}
	for _, s := range a.States() {
		a.finishState(s)
	}

	logger.Debug("minimize",
		slog.Int("states", before),
		slog.Int("min_states", a.NumStates()),
		slog.Int("classes", len(classes)))
}

// removeUselessStates keeps only the states that are both reachable from the start and able to reach
// an accept state. When the start itself is useless the language is empty and the automaton is
// reset to a bare normal start state.
func (a *Automaton) removeUselessStates() {
	live := NewForwardSlicer(a).Slice(a.start)
	live.InPlaceIntersection(NewBackwardSlicer(a).Slice(a.AcceptStates()...))

	if !live.Test(uint(a.start.id)) {
		for _, s := range a.States() {
			if s != a.start {
				a.removeState(s)
			}
		}
		for _, t := range a.Outgoing(a.start) {
			a.removeTransition(t)
		}
		a.start.setKind(Normal)
		return
	}

	for _, s := range a.States() {
		if !live.Test(uint(s.id)) {
			a.removeState(s)
		}
	}
}

// equivalenceClasses refines the pairwise inequality relation to a fixpoint and returns every class
// with more than one member. Two states stay equal while they agree on acceptance and, for every
// elementary interval of their combined outgoing ranges, each successor of one has an equal
// successor in the other. On a pruned DFA this is Myhill-Nerode equivalence.
func (a *Automaton) equivalenceClasses() [][]*State {
	states := a.States()
	n := len(states)
	index := make(map[int]int, n)
	for i, s := range states {
		index[s.id] = i
	}

	out := make([][]*Transition, n)
	for i, s := range states {
		out[i] = a.Outgoing(s)
	}

	inequal := bitset.New(uint(n * n))
	mark := func(i, j int) {
		inequal.Set(uint(i*n + j))
		inequal.Set(uint(j*n + i))
	}
	isInequal := func(i, j int) bool {
		return i != j && inequal.Test(uint(i*n+j))
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if states[i].IsAccept() != states[j].IsAccept() {
				mark(i, j)
			}
		}
	}

	successors := func(i, symbol int) []int {
		var result []int
		for _, t := range out[i] {
			if t.Label.Contains(symbol) {
				result = append(result, index[t.Target.id])
			}
		}
		return result
	}
	// covered reports whether every member of xs has a partner in ys that is not known to differ.
	covered := func(xs, ys []int) bool {
		for _, x := range xs {
			found := false
			for _, y := range ys {
				if !isInequal(x, y) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	distinguishable := func(i, j int) bool {
		combined := make([]*Transition, 0, len(out[i])+len(out[j]))
		combined = append(combined, out[i]...)
		combined = append(combined, out[j]...)
		for _, symbol := range startPoints(combined) {
			si, sj := successors(i, symbol), successors(j, symbol)
			if (len(si) == 0) != (len(sj) == 0) {
				return true
			}
			if !covered(si, sj) || !covered(sj, si) {
				return true
			}
		}
		return false
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !isInequal(i, j) && distinguishable(i, j) {
					mark(i, j)
					changed = true
				}
			}
		}
	}

	// Group the pairs left equal; the relation is an equivalence, so the first member found for
	// each class is its representative.
	rep := make([]int, n)
	for i := range rep {
		rep[i] = -1
	}
	startIdx := index[a.start.id]
	var classes [][]*State
	for i := 0; i < n; i++ {
		if rep[i] != -1 {
			continue
		}
		group := []*State{states[i]}
		rep[i] = i
		for j := i + 1; j < n; j++ {
			if rep[j] == -1 && !isInequal(i, j) {
				rep[j] = i
				if j == startIdx {
					group = append([]*State{states[j]}, group...)
				} else {
					group = append(group, states[j])
				}
			}
		}
		if len(group) > 1 {
			classes = append(classes, group)
		}
	}
	return classes
}
