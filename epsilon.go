package automaton

import "log/slog"

// EliminateEpsilons Returns an epsilon-free, possibly nondeterministic, automaton accepting the same
// language. Every state takes over the non-epsilon transitions of its epsilon closure and becomes an
// accept state when its closure holds one. Only the start and the endpoints of the new transitions
// survive; terminal accept states are folded into one and the result is minimized.
func (a *Automaton) EliminateEpsilons() *Automaton {
	var result *Automaton
	if a.hasEpsilons() {
		result = a.closeOverEpsilons()
	} else {
		result = a.Copy()
	}
	result.foldTerminalAccepts()
	result.Minimize()

	logger.Debug("eliminate epsilons",
		slog.Int("states", a.NumStates()),
		slog.Int("result_states", result.NumStates()))
	return result
}

// closeOverEpsilons rebuilds a from the non-epsilon transitions of every epsilon closure.
func (a *Automaton) closeOverEpsilons() *Automaton {
	closure := a.epsilonClosure()
	result := newGraph()
	smap := make(map[int]*State, len(a.states))
	lookup := func(s *State) *State {
		n, ok := smap[s.id]
		if !ok {
			kind := Normal
			if a.containsAccept(closure[s.id].GetArray()) {
				kind = Accept
			}
			n = result.createState(kind)
			smap[s.id] = n
		}
		return n
	}

	result.start = lookup(a.start)
	for _, s := range a.States() {
		for _, u := range closure[s.id].GetArray() {
			for _, t := range a.Outgoing(a.states[u]) {
				if t.Label.IsEpsilon() {
					continue
				}
				for _, reach := range closure[t.Target.id].GetArray() {
					result.addTransition(lookup(s), lookup(a.states[reach]), t.Label)
				}
			}
		}
	}

	return result
}

// foldTerminalAccepts merges every accept state without outgoing transitions into one, the start
// when it is among them.
func (a *Automaton) foldTerminalAccepts() {
	var terminal []*State
	for _, s := range a.AcceptStates() {
		if a.OutDegree(s) == 0 {
			if s == a.start {
				terminal = append([]*State{s}, terminal...)
			} else {
				terminal = append(terminal, s)
			}
		}
	}
	a.mergeAll(terminal)
}
