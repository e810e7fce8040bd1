package automaton

import (
	"fmt"
	"maps"
	"slices"
)

// Automaton Represents an automaton and all its states and transitions. The states and transitions
// form a multigraph: parallel transitions and self-loops are allowed, but two transitions with the
// same source, target and label collapse into one. Exactly one state is the start state.
//
// Operators never modify their operands; they copy them and return a freshly built automaton, so an
// automaton returned by this package can be shared freely. Minimize is the only method that changes
// the receiver and must only be called on an automaton the caller owns.
type Automaton struct {
	states map[int]*State

	// Outgoing and incoming transitions keyed by state id.
	out map[int][]*Transition
	in  map[int][]*Transition

	// All transitions by structural key, used to collapse identical parallel edges.
	edges map[transitionKey]*Transition

	start *State

	// Next state id; ids are never reused.
	nextID int
}

func newGraph() *Automaton {
	return &Automaton{
		states: make(map[int]*State),
		out:    make(map[int][]*Transition),
		in:     make(map[int][]*Transition),
		edges:  make(map[transitionKey]*Transition),
	}
}

func newAutomaton(startKind Kind) *Automaton {
	a := newGraph()
	a.start = a.createState(startKind)
	return a
}

// Empty Returns a new automaton with the empty language: a single normal start state and no transitions.
func Empty() *Automaton {
	return newAutomaton(Normal)
}

// EpsilonAccepting Returns a new automaton accepting only the empty string: a single accept start
// state and no transitions.
func EpsilonAccepting() *Automaton {
	return newAutomaton(Accept)
}

// NewState Returns a detached state to be used with FromStartAndTransitions.
func NewState(kind Kind) *State {
	return &State{id: -1, kind: kind}
}

// FromStartAndTransitions Builds an automaton from a start state and a set of transitions. States are
// identified by pointer and copied with fresh ids, so the inputs are never adopted. Identical
// transitions collapse.
func FromStartAndTransitions(start *State, transitions []*Transition) (*Automaton, error) {
	if start == nil {
		return nil, ErrNilState
	}

	a := newGraph()
	smap := make(map[*State]*State)
	lookup := func(s *State) *State {
		n, ok := smap[s]
		if !ok {
			n = a.createState(s.kind)
			smap[s] = n
		}
		return n
	}

	if len(transitions) == 0 {
		a.start = lookup(start)
		return a, nil
	}

	for i, t := range transitions {
		if t == nil || t.Source == nil || t.Target == nil {
			return nil, fmt.Errorf("transition %d: %w", i, ErrNilState)
		}
		if !t.Label.IsValid() {
			return nil, fmt.Errorf("transition %d: %w", i, ErrUnlabeledTransition)
		}
	}

	for _, t := range transitions {
		a.addTransition(lookup(t.Source), lookup(t.Target), t.Label)
	}

	s, ok := smap[start]
	if !ok {
		return nil, ErrStartNotFound
	}
	a.start = s
	return a, nil
}

// Copy Returns a deep copy: one fresh state per state (same kind, new id) and every transition
// replayed between the copies.
func (a *Automaton) Copy() *Automaton {
	c := newGraph()
	smap := c.importGraph(a)
	c.start = smap[a.start.id]
	return c
}

// importGraph copies every state and transition of other into a, returning the id remap table.
func (a *Automaton) importGraph(other *Automaton) map[int]*State {
	smap := make(map[int]*State, len(other.states))
	for _, s := range other.States() {
		smap[s.id] = a.createState(s.kind)
	}
	for _, t := range other.Transitions() {
		a.addTransition(smap[t.Source.id], smap[t.Target.id], t.Label)
	}
	return smap
}

// Start Returns the start state.
func (a *Automaton) Start() *State {
	return a.start
}

func (a *Automaton) createState(kind Kind) *State {
	s := &State{id: a.nextID, kind: kind}
	a.nextID++
	a.states[s.id] = s
	return s
}

// contains reports whether s is a vertex of a.
func (a *Automaton) contains(s *State) bool {
	return s != nil && a.states[s.id] == s
}

// AddTransition Adds t to the automaton. Both endpoints must already belong to it and t must carry
// a label. Returns false if an identical transition was already present.
func (a *Automaton) AddTransition(t *Transition) (bool, error) {
	if t == nil || t.Source == nil || t.Target == nil {
		return false, ErrNilState
	}
	if !t.Label.IsValid() {
		return false, ErrUnlabeledTransition
	}
	if !a.contains(t.Source) || !a.contains(t.Target) {
		return false, ErrForeignState
	}
	if _, ok := a.edges[t.key()]; ok {
		return false, nil
	}
	a.link(t)
	return true, nil
}

// addTransition adds a transition between two states of a. Violations are programmer errors.
func (a *Automaton) addTransition(source, target *State, label Label) *Transition {
	if !label.IsValid() {
		panic("automaton: transition without label")
	}
	if !a.contains(source) || !a.contains(target) {
		panic(fmt.Sprintf("automaton: transition %v -> %v references a foreign state", source, target))
	}
	t := &Transition{Source: source, Target: target, Label: label}
	if existing, ok := a.edges[t.key()]; ok {
		return existing
	}
	a.link(t)
	return t
}

func (a *Automaton) link(t *Transition) {
	a.edges[t.key()] = t
	a.out[t.Source.id] = append(a.out[t.Source.id], t)
	a.in[t.Target.id] = append(a.in[t.Target.id], t)
}

func (a *Automaton) removeTransition(t *Transition) {
	k := t.key()
	if a.edges[k] != t {
		return
	}
	delete(a.edges, k)
	a.out[t.Source.id] = slices.DeleteFunc(a.out[t.Source.id], func(x *Transition) bool { return x == t })
	a.in[t.Target.id] = slices.DeleteFunc(a.in[t.Target.id], func(x *Transition) bool { return x == t })
}

// relabel replaces the label of t, keeping the structural index consistent.
func (a *Automaton) relabel(t *Transition, label Label) {
	a.removeTransition(t)
	a.addTransition(t.Source, t.Target, label)
}

// removeState deletes s and every transition touching it.
func (a *Automaton) removeState(s *State) {
	if !a.contains(s) {
		return
	}
	for _, t := range slices.Clone(a.out[s.id]) {
		a.removeTransition(t)
	}
	for _, t := range slices.Clone(a.in[s.id]) {
		a.removeTransition(t)
	}
	delete(a.out, s.id)
	delete(a.in, s.id)
	delete(a.states, s.id)
}

// merge recreates every transition of b on a, then deletes b. Self-loops of b become self-loops of a.
func (a *Automaton) merge(dst, src *State) {
	if dst == src {
		return
	}
	if !a.contains(dst) || !a.contains(src) {
		panic(fmt.Sprintf("automaton: cannot merge %v into %v", src, dst))
	}
	redirect := func(s *State) *State {
		if s == src {
			return dst
		}
		return s
	}
	pending := make([]*Transition, 0, len(a.out[src.id])+len(a.in[src.id]))
	pending = append(pending, a.out[src.id]...)
	pending = append(pending, a.in[src.id]...)

	a.removeState(src)
	for _, t := range pending {
		a.addTransition(redirect(t.Source), redirect(t.Target), t.Label)
	}
}

// mergeAll folds every state of group onto its first element.
func (a *Automaton) mergeAll(group []*State) {
	if len(group) < 2 {
		return
	}
	first := group[0]
	for _, s := range group[1:] {
		a.merge(first, s)
	}
}

// addVirtualEnd adds a single accept state: every previous accept state is demoted and linked to it
// by an epsilon transition. An automaton with the empty language gets start -> end directly.
func (a *Automaton) addVirtualEnd() *State {
	ends := a.AcceptStates()
	empty := a.IsEmptyLanguage()
	end := a.createState(Accept)

	for _, e := range ends {
		e.setKind(Normal)
		if !empty {
			a.addTransition(e, end, Epsilon())
		}
	}
	if empty {
		a.addTransition(a.start, end, Epsilon())
	}
	return end
}

// States Returns all states ordered by id.
func (a *Automaton) States() []*State {
	ids := slices.Sorted(maps.Keys(a.states))
	result := make([]*State, len(ids))
	for i, id := range ids {
		result[i] = a.states[id]
	}
	return result
}

// AcceptStates Returns the accept states ordered by id.
func (a *Automaton) AcceptStates() []*State {
	var result []*State
	for _, s := range a.States() {
		if s.IsAccept() {
			result = append(result, s)
		}
	}
	return result
}

// Transitions Returns every transition ordered by source id, label, then target id.
func (a *Automaton) Transitions() []*Transition {
	result := make([]*Transition, 0, len(a.edges))
	for _, s := range a.States() {
		result = append(result, a.Outgoing(s)...)
	}
	return result
}

// Outgoing Returns the transitions leaving s, ordered by label then target id.
func (a *Automaton) Outgoing(s *State) []*Transition {
	result := slices.Clone(a.out[s.id])
	slices.SortFunc(result, compareTransitions)
	return result
}

// Incoming Returns the transitions entering s, ordered by source id then label.
func (a *Automaton) Incoming(s *State) []*Transition {
	result := slices.Clone(a.in[s.id])
	slices.SortFunc(result, func(x, y *Transition) int {
		if x.Source.id != y.Source.id {
			return x.Source.id - y.Source.id
		}
		return compareLabels(x.Label, y.Label)
	})
	return result
}

func compareTransitions(x, y *Transition) int {
	if c := compareLabels(x.Label, y.Label); c != 0 {
		return c
	}
	return x.Target.id - y.Target.id
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumTransitions How many transitions this automaton has.
func (a *Automaton) NumTransitions() int {
	return len(a.edges)
}

// OutDegree How many transitions leave s.
func (a *Automaton) OutDegree(s *State) int {
	return len(a.out[s.id])
}

func (a *Automaton) hasEpsilons() bool {
	for k := range a.edges {
		if k.label.IsEpsilon() {
			return true
		}
	}
	return false
}

// IsDeterministic Returns true if no transition is epsilon and, for every state, no two outgoing
// transitions share a symbol.
func (a *Automaton) IsDeterministic() bool {
	for _, s := range a.states {
		trans := a.Outgoing(s)
		for i, t := range trans {
			if t.Label.IsEpsilon() {
				return false
			}
			if i > 0 && trans[i-1].Label.max >= t.Label.min {
				return false
			}
		}
	}
	return true
}

// IsEmptyLanguage Returns true if the automaton accepts no strings.
func (a *Automaton) IsEmptyLanguage() bool {
	if a.start.IsAccept() {
		return false
	}
	if len(a.edges) == 0 {
		// Common case: just the start state
		return true
	}
	reach := NewForwardSlicer(a).Slice(a.start)
	for _, s := range a.AcceptStates() {
		if reach.Test(uint(s.id)) {
			return false
		}
	}
	return true
}

// acceptsOnlyEmptyString reports the epsilon-accepting shape: one accept state, no transitions.
func (a *Automaton) acceptsOnlyEmptyString() bool {
	return len(a.states) == 1 && len(a.edges) == 0 && a.start.IsAccept()
}

// finishState sorts the transitions leaving s by target then range and combines ranges that overlap
// or are adjacent when they lead to the same target.
func (a *Automaton) finishState(s *State) {
	var ranges []*Transition
	for _, t := range a.out[s.id] {
		if !t.Label.IsEpsilon() {
			ranges = append(ranges, t)
		}
	}
	if len(ranges) < 2 {
		return
	}

	slices.SortFunc(ranges, func(x, y *Transition) int {
		if x.Target.id != y.Target.id {
			return x.Target.id - y.Target.id
		}
		return compareLabels(x.Label, y.Label)
	})

	reduced := make([]*Transition, 0, len(ranges))
	var cur *Transition
	for _, t := range ranges {
		if cur != nil && cur.Target == t.Target && t.Label.min <= cur.Label.max+1 {
			if t.Label.max > cur.Label.max {
				cur.Label.max = t.Label.max
			}
			continue
		}
		cur = &Transition{Source: s, Target: t.Target, Label: t.Label}
		reduced = append(reduced, cur)
	}
	if len(reduced) == len(ranges) {
		return
	}

	for _, t := range ranges {
		a.removeTransition(t)
	}
	for _, t := range reduced {
		a.addTransition(t.Source, t.Target, t.Label)
	}
}

// startPoints Returns the sorted interval start points of the given ranges: every min, and every
// max+1 that is still inside the alphabet. Consecutive points delimit elementary intervals on which
// every range is either fully present or absent.
func startPoints(trans []*Transition) []int {
	set := make(map[int]struct{}, 2*len(trans))
	for _, t := range trans {
		if t.Label.IsEpsilon() {
			continue
		}
		set[t.Label.min] = struct{}{}
		if t.Label.max < MaxSymbol {
			set[t.Label.max+1] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// String Returns the DOT description of the automaton.
func (a *Automaton) String() string {
	return a.Dot()
}
