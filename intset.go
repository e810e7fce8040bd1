package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// IntSet is a set of state ids usable as a HashMap key.
type IntSet interface {
	Hashable

	GetArray() []int

	Size() int
}

var _ IntSet = &StateSet{}

// StateSet A mutable set of state ids, used to accumulate the members of a subset-construction
// state before freezing it into a key.
type StateSet struct {
	bits        *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet() *StateSet {
	return &StateSet{
		bits: bitset.New(0),
	}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = hashValues(s.GetArray())
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	o, ok := other.(IntSet)
	if !ok || o.Size() != s.Size() || o.Hash() != s.Hash() {
		return false
	}
	return slices.Equal(s.GetArray(), o.GetArray())
}

// GetArray Returns the members in increasing order.
func (s *StateSet) GetArray() []int {
	values := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

func (s *StateSet) Contains(state int) bool {
	return s.bits.Test(uint(state))
}

func (s *StateSet) Add(state int) {
	if s.bits.Test(uint(state)) {
		return
	}
	s.bits.Set(uint(state))
	s.hashUpdated = false
}

// AddAll adds every member of other.
func (s *StateSet) AddAll(other *StateSet) {
	s.bits.InPlaceUnion(other.bits)
	s.hashUpdated = false
}

func (s *StateSet) Remove(state int) {
	if !s.bits.Test(uint(state)) {
		return
	}
	s.bits.Clear(uint(state))
	s.hashUpdated = false
}

// Freeze Returns an immutable snapshot of the set bound to the given subset-construction state.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash(), state)
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet An immutable sorted set of state ids with a precomputed hash.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals compares members; the bound state does not take part.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		switch o := other.(type) {
		case *FrozenIntSet:
			return o == nil
		case *StateSet:
			return o == nil
		default:
			return false
		}
	}

	o, ok := other.(IntSet)
	if !ok || isNilIntSet(o) {
		return false
	}
	if o.Size() != f.Size() || o.Hash() != f.Hash() {
		return false
	}
	return slices.Equal(f.values, o.GetArray())
}

func isNilIntSet(s IntSet) bool {
	switch o := s.(type) {
	case *FrozenIntSet:
		return o == nil
	case *StateSet:
		return o == nil
	}
	return false
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// State Returns the subset-construction state this set was frozen for.
func (f *FrozenIntSet) State() int {
	return f.state
}

func hashValues(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h += uint64(mix(v))
	}
	return h
}
