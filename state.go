package automaton

import "fmt"

// Kind of a state.
type Kind uint8

const (
	Normal Kind = iota
	Accept
)

func (k Kind) String() string {
	if k == Accept {
		return "ACCEPT"
	}
	return "NORMAL"
}

// State A vertex of an automaton. The id is unique within the owning automaton and
// assigned in increasing order; copies into another automaton always get a fresh id.
type State struct {
	id   int
	kind Kind
}

func (s *State) ID() int { return s.id }

func (s *State) Kind() Kind { return s.kind }

// IsAccept Returns true if this is an accept state.
func (s *State) IsAccept() bool { return s.kind == Accept }

func (s *State) setKind(k Kind) { s.kind = k }

func (s *State) String() string {
	return fmt.Sprintf("%d[%s]", s.id, s.kind)
}

// Transition A directed labeled edge between two states of the same automaton.
type Transition struct {
	Source *State
	Target *State
	Label  Label
}

// NewTransition creates a transition; it is validated when added to an automaton.
func NewTransition(source, target *State, label Label) *Transition {
	return &Transition{Source: source, Target: target, Label: label}
}

// Equal reports structural equality: same endpoints (by id) and same label.
func (t *Transition) Equal(o *Transition) bool {
	return t.key() == o.key()
}

func (t *Transition) String() string {
	return fmt.Sprintf("%d -%s-> %d", t.Source.id, t.Label, t.Target.id)
}

type transitionKey struct {
	source, target int
	label          Label
}

func (t *Transition) key() transitionKey {
	return transitionKey{source: t.Source.id, target: t.Target.id, label: t.Label}
}
