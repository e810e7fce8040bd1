package automaton

// Every operator in this file copies its operands, splices the copies and returns a deterministic,
// epsilon-free automaton. Operands are never modified.

// Concat Returns an automaton accepting the concatenation of the languages of a and b.
func (a *Automaton) Concat(b *Automaton) *Automaton {
	return a.ConcatWith(b, true)
}

// ConcatWith Concatenates a and b. With rmaccept the accept states of a are no longer accepting in
// the result; without it they stay accepting, so the result accepts L(a) ∪ L(a)·L(b).
func (a *Automaton) ConcatWith(b *Automaton, rmaccept bool) *Automaton {
	switch {
	case a.IsEmptyLanguage():
		return Empty()
	case b.IsEmptyLanguage():
		if rmaccept {
			return Empty()
		}
		return a.Determinize()
	case rmaccept && a.acceptsOnlyEmptyString():
		return b.Determinize()
	}

	first := a.Copy()
	end := first.addVirtualEnd()

	smap := first.importGraph(b)
	first.addTransition(end, smap[b.start.id], Epsilon())

	if rmaccept {
		end.setKind(Normal)
	}
	return first.Determinize()
}

// Concatenate Returns the concatenation of all given automata, in order. No automata yields the
// automaton accepting only the empty string.
func Concatenate(automata ...*Automaton) *Automaton {
	result := EpsilonAccepting()
	for _, a := range automata {
		result = result.Concat(a)
	}
	return result
}

// Union Returns an automaton accepting the union of the languages of a and b.
func (a *Automaton) Union(b *Automaton) *Automaton {
	result := Empty()
	first := result.importGraph(a)
	second := result.importGraph(b)

	result.addTransition(result.start, first[a.start.id], Epsilon())
	result.addTransition(result.start, second[b.start.id], Epsilon())

	return result.Determinize()
}

// UnionAll Returns the union of all given automata. No automata yields the empty language.
func UnionAll(automata ...*Automaton) *Automaton {
	result := Empty()
	starts := make([]*State, 0, len(automata))
	for _, a := range automata {
		smap := result.importGraph(a)
		starts = append(starts, smap[a.start.id])
	}
	for _, s := range starts {
		result.addTransition(result.start, s, Epsilon())
	}
	return result.Determinize()
}

type statePair struct {
	a, b int
}

// Intersect Returns an automaton accepting the strings accepted by both a and b, built as the
// product of their reachable states.
func (a *Automaton) Intersect(b *Automaton) *Automaton {
	left, right := a, b
	if left.hasEpsilons() {
		left = left.Determinize()
	}
	if right.hasEpsilons() {
		right = right.Determinize()
	}

	kindOf := func(p statePair) Kind {
		if left.states[p.a].IsAccept() && right.states[p.b].IsAccept() {
			return Accept
		}
		return Normal
	}

	result := newGraph()
	initial := statePair{a: left.start.id, b: right.start.id}
	result.start = result.createState(kindOf(initial))
	product := map[statePair]*State{initial: result.start}

	visited := make(map[statePair]struct{})
	worklist := []statePair{initial}
	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]
		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}

		for _, t1 := range left.Outgoing(left.states[p.a]) {
			for _, t2 := range right.Outgoing(right.states[p.b]) {
				label, ok := t1.Label.Intersect(t2.Label)
				if !ok {
					continue
				}
				next := statePair{a: t1.Target.id, b: t2.Target.id}
				dest, ok := product[next]
				if !ok {
					dest = result.createState(kindOf(next))
					product[next] = dest
				}
				result.addTransition(product[p], dest, label)
				worklist = append(worklist, next)
			}
		}
	}

	return result.Determinize()
}

// Optional Returns an automaton accepting the language of a plus the empty string.
func (a *Automaton) Optional() *Automaton {
	return a.Union(EpsilonAccepting())
}

// Star Returns an automaton accepting the Kleene star of the language of a.
func (a *Automaton) Star() *Automaton {
	opt := a.Optional()
	for _, s := range opt.AcceptStates() {
		opt.addTransition(s, opt.start, Epsilon())
	}
	return opt.Determinize()
}

// Plus Returns an automaton accepting one or more repetitions of the language of a.
func (a *Automaton) Plus() *Automaton {
	return a.ConcatWith(a.Star(), false)
}

// Repeat Returns an automaton accepting between min and max (inclusive) concatenated repetitions of
// the language of a. If min > max the result is the empty language.
func (a *Automaton) Repeat(min, max int) *Automaton {
	if min < 0 {
		min = 0
	}
	if min > max {
		return Empty()
	}
	if a.IsEmptyLanguage() {
		if min == 0 {
			return EpsilonAccepting()
		}
		return Empty()
	}

	pattern := a.Determinize()
	result := EpsilonAccepting()
	for i := 0; i < min; i++ {
		result = result.Concat(pattern)
	}
	for i := 0; i < max-min; i++ {
		result = result.ConcatWith(pattern, false)
	}
	return result.Determinize()
}

// RepeatMin Returns an automaton accepting min or more concatenated repetitions of the language of a.
func (a *Automaton) RepeatMin(min int) *Automaton {
	if min < 0 {
		min = 0
	}
	pattern := a.Determinize()
	result := EpsilonAccepting()
	for i := 0; i < min; i++ {
		result = result.Concat(pattern)
	}
	return result.Concat(pattern.Star())
}

// Append Returns an automaton accepting every string of a followed by one symbol of label. On an
// automaton with the empty language the result accepts exactly the symbols of label, which makes
// Empty the seed for building literals symbol by symbol.
func (a *Automaton) Append(label Label) *Automaton {
	if !label.IsValid() {
		panic("automaton: append without label")
	}
	c := a.Copy()

	if c.IsEmptyLanguage() {
		n := c.createState(Accept)
		c.addTransition(c.start, n, label)
		return c.Determinize()
	}

	end := c.addVirtualEnd()
	for _, t := range c.Incoming(end) {
		c.relabel(t, label)
	}
	return c.Determinize()
}

// totalize adds a dead state and routes every symbol without a transition to it, so each state has
// a transition for the whole alphabet. The receiver must be deterministic.
func (a *Automaton) totalize() {
	states := a.States()
	dead := a.createState(Normal)
	all := Label{min: MinSymbol, max: MaxSymbol, kind: labelRange}
	a.addTransition(dead, dead, all)

	for _, s := range states {
		ranges := make([]Label, 0, a.OutDegree(s))
		for _, t := range a.out[s.id] {
			ranges = append(ranges, t.Label)
		}
		for _, missing := range complementRanges(ranges) {
			a.addTransition(s, dead, missing)
		}
	}
}

// Complement Returns an automaton accepting every string over the alphabet that a rejects.
func (a *Automaton) Complement() *Automaton {
	d := a.Determinize()
	d.totalize()
	for _, s := range d.States() {
		if s.IsAccept() {
			s.setKind(Normal)
		} else {
			s.setKind(Accept)
		}
	}
	return d
}

// Minus Returns an automaton accepting the strings accepted by a and rejected by b.
func (a *Automaton) Minus(b *Automaton) *Automaton {
	return a.Intersect(b.Complement())
}
