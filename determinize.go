package automaton

import "log/slog"

// epsilonClosure Returns, for every state, the set of states reachable through epsilon transitions
// only, the state itself included.
func (a *Automaton) epsilonClosure() map[int]*StateSet {
	closure := make(map[int]*StateSet, len(a.states))
	for _, s := range a.States() {
		set := NewStateSet()
		stack := []*State{s}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if set.Contains(cur.id) {
				continue
			}
			set.Add(cur.id)
			for _, t := range a.out[cur.id] {
				if t.Label.IsEpsilon() && !set.Contains(t.Target.id) {
					stack = append(stack, t.Target)
				}
			}
		}
		closure[s.id] = set
	}
	return closure
}

func (a *Automaton) containsAccept(ids []int) bool {
	for _, id := range ids {
		if a.states[id].IsAccept() {
			return true
		}
	}
	return false
}

// Determinize Returns a deterministic, epsilon-free automaton accepting the same language, built by
// subset construction. Every state of the result stands for the epsilon-closed set of states of the
// receiver it was built from. Outgoing ranges are split on their start points first, so the labels
// leaving any state of the result are pairwise disjoint even when the receiver's ranges overlap.
// Worst case complexity: exponential in number of states.
func (a *Automaton) Determinize() *Automaton {
	closure := a.epsilonClosure()
	dfa := Empty()

	initial := NewStateSet()
	initial.AddAll(closure[a.start.id])
	if a.containsAccept(initial.GetArray()) {
		dfa.start.setKind(Accept)
	}

	newState := NewHashMap[*State](WithCapacity(16))
	worklist := []*FrozenIntSet{initial.Freeze(dfa.start.id)}
	newState.Set(worklist[0], dfa.start)

	var trans []*Transition
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		source := dfa.states[current.State()]

		// Combined non-epsilon transitions of the members.
		trans = trans[:0]
		for _, id := range current.GetArray() {
			for _, t := range a.out[id] {
				if !t.Label.IsEpsilon() {
					trans = append(trans, t)
				}
			}
		}
		if len(trans) == 0 {
			continue
		}

		points := startPoints(trans)
		for i, lo := range points {
			hi := MaxSymbol
			if i+1 < len(points) {
				hi = points[i+1] - 1
			}

			target := NewStateSet()
			for _, t := range trans {
				if t.Label.min <= lo && hi <= t.Label.max {
					target.AddAll(closure[t.Target.id])
				}
			}
			if target.Size() == 0 {
				continue
			}

			dest, ok := newState.Get(target)
			if !ok {
				kind := Normal
				if a.containsAccept(target.GetArray()) {
					kind = Accept
				}
				dest = dfa.createState(kind)
				frozen := target.Freeze(dest.id)
				newState.Set(frozen, dest)
				worklist = append(worklist, frozen)
			}
			dfa.addTransition(source, dest, Label{min: lo, max: hi, kind: labelRange})
		}

		// Adjacent elementary intervals leading to the same subset become one range.
		dfa.finishState(source)
	}

	logger.Debug("determinize",
		slog.Int("states", a.NumStates()),
		slog.Int("transitions", a.NumTransitions()),
		slog.Int("dfa_states", dfa.NumStates()),
		slog.Int("dfa_transitions", dfa.NumTransitions()))
	return dfa
}
