package automaton

// RunAutomaton A compiled, read-only form of a minimal deterministic automaton for fast matching.
// States are numbered 0..n-1 with 0 the initial state; the transitions of each state are stored as
// sorted (min, max, dest) triples and looked up with binary search.
type RunAutomaton struct {
	// Offset of each state's first triple in transitions; offsets[n] ends the last state.
	offsets     []int
	transitions []int
	accept      []bool
}

// NewRunAutomaton compiles a. The receiver is not modified.
func NewRunAutomaton(a *Automaton) *RunAutomaton {
	d := a.Determinize()
	d.Minimize()

	states := d.States()
	number := make(map[int]int, len(states))
	number[d.start.id] = 0
	for _, s := range states {
		if s != d.start {
			number[s.id] = len(number)
		}
	}
	ordered := make([]*State, len(states))
	for _, s := range states {
		ordered[number[s.id]] = s
	}

	r := &RunAutomaton{
		offsets:     make([]int, len(ordered)+1),
		transitions: make([]int, 0, 3*d.NumTransitions()),
		accept:      make([]bool, len(ordered)),
	}
	for i, s := range ordered {
		r.offsets[i] = len(r.transitions)
		r.accept[i] = s.IsAccept()
		for _, t := range d.Outgoing(s) {
			r.transitions = append(r.transitions, t.Label.min, t.Label.max, number[t.Target.id])
		}
	}
	r.offsets[len(ordered)] = len(r.transitions)
	return r
}

// NumStates How many states this automaton has.
func (r *RunAutomaton) NumStates() int {
	return len(r.accept)
}

// IsAccept Returns true if this state is an accept state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept[state]
}

// Step Returns the destination of the transition of state matching label, or -1 if there is none.
func (r *RunAutomaton) Step(state, label int) int {
	// Ranges are sorted and disjoint: binary search the one containing label.
	low, high := 0, (r.offsets[state+1]-r.offsets[state])/3-1
	for low <= high {
		mid := (low + high) >> 1
		i := r.offsets[state] + 3*mid
		if r.transitions[i] > label {
			high = mid - 1
		} else if r.transitions[i+1] < label {
			low = mid + 1
		} else {
			return r.transitions[i+2]
		}
	}
	return -1
}

// Run Returns true if s is accepted.
func (r *RunAutomaton) Run(s string) bool {
	p := 0
	for _, c := range s {
		p = r.Step(p, int(c))
		if p == -1 {
			return false
		}
	}
	return r.accept[p]
}
