package automaton

import (
	"slices"
)

// Automata builds primitive automata. Every result is deterministic.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton with the empty language.
func (*Automata) MakeEmpty() *Automaton {
	return Empty()
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *Automaton {
	return EpsilonAccepting()
}

// MakeAnyString
// Returns a new automaton that accepts all strings.
func (*Automata) MakeAnyString() *Automaton {
	a := EpsilonAccepting()
	a.addTransition(a.start, a.start, Label{min: MinSymbol, max: MaxSymbol, kind: labelRange})
	return a
}

// MakeAnyChar
// Returns a new automaton that accepts any single symbol.
func (m *Automata) MakeAnyChar() *Automaton {
	a, _ := m.MakeCharRange(MinSymbol, MaxSymbol)
	return a
}

// MakeChar
// Returns a new automaton that accepts a single symbol.
func (*Automata) MakeChar(c int) *Automaton {
	return Empty().Append(Char(c))
}

// MakeCharRange
// Returns a new automaton that accepts a single symbol in [min, max].
func (*Automata) MakeCharRange(min, max int) (*Automaton, error) {
	label, err := NewRange(min, max)
	if err != nil {
		return nil, err
	}
	return Empty().Append(label), nil
}

// MakeCharSet
// Returns a new automaton that accepts a single symbol from any of the given ranges. No ranges
// yields the empty language.
func (*Automata) MakeCharSet(ranges ...Label) *Automaton {
	a := Empty()
	var end *State
	for _, r := range ranges {
		if r.IsEpsilon() || !r.IsValid() {
			continue
		}
		if end == nil {
			end = a.createState(Accept)
		}
		a.addTransition(a.start, end, r)
	}
	if end != nil {
		a.finishState(a.start)
	}
	return a
}

// MakeNotCharSet
// Returns a new automaton that accepts a single symbol outside all of the given ranges.
func (m *Automata) MakeNotCharSet(ranges ...Label) *Automaton {
	return m.MakeCharSet(complementRanges(ranges)...)
}

// MakeString
// Returns a new automaton that accepts exactly s.
func (*Automata) MakeString(s string) *Automaton {
	a := EpsilonAccepting()
	last := a.start
	for _, r := range s {
		next := a.createState(Accept)
		last.setKind(Normal)
		a.addTransition(last, next, Char(int(r)))
		last = next
	}
	return a
}

// complementRanges Returns the sorted, disjoint ranges covering the alphabet minus the given ranges.
func complementRanges(ranges []Label) []Label {
	sorted := make([]Label, 0, len(ranges))
	for _, r := range ranges {
		if r.kind == labelRange {
			sorted = append(sorted, r)
		}
	}
	slices.SortFunc(sorted, compareLabels)

	var result []Label
	next := MinSymbol
	for _, r := range sorted {
		if r.min > next {
			result = append(result, Label{min: next, max: r.min - 1, kind: labelRange})
		}
		if r.max+1 > next {
			next = r.max + 1
		}
	}
	if next <= MaxSymbol {
		result = append(result, Label{min: next, max: MaxSymbol, kind: labelRange})
	}
	return result
}
