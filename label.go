package automaton

import (
	"bytes"
	"fmt"
	"unicode"
)

const (
	// MinSymbol is the smallest symbol of the alphabet.
	MinSymbol = 0
	// MaxSymbol is the largest symbol of the alphabet.
	MaxSymbol = int(unicode.MaxRune)
)

type labelKind uint8

const (
	labelNone labelKind = iota
	labelRange
	labelEpsilon
)

// Label A transition label: either a contiguous symbol range [Min, Max] or the epsilon marker.
// Labels are values; two labels are equal (==) iff they have the same variant and bounds.
// The zero value is an unlabeled marker and is refused by AddTransition.
type Label struct {
	min, max int
	kind     labelKind
}

// NewRange Returns the label for [lo, hi]. Fails with ErrInvalidRange if lo > hi or
// either bound lies outside the alphabet.
func NewRange(lo, hi int) (Label, error) {
	if lo > hi || lo < MinSymbol || hi > MaxSymbol {
		return Label{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lo, hi)
	}
	return Label{min: lo, max: hi, kind: labelRange}, nil
}

// Char Returns the label matching exactly c. c must lie in [MinSymbol, MaxSymbol]; use NewRange to
// validate untrusted input.
func Char(c int) Label {
	if c < MinSymbol || c > MaxSymbol {
		panic(fmt.Sprintf("automaton: symbol %d outside the alphabet", c))
	}
	return Label{min: c, max: c, kind: labelRange}
}

// Epsilon Returns the epsilon label.
func Epsilon() Label {
	return Label{kind: labelEpsilon}
}

func (l Label) Min() int { return l.min }

func (l Label) Max() int { return l.max }

func (l Label) IsEpsilon() bool { return l.kind == labelEpsilon }

// IsValid reports whether l is a range or epsilon (not the zero value).
func (l Label) IsValid() bool { return l.kind != labelNone }

// Contains Returns true if c is in the range. Epsilon contains nothing.
func (l Label) Contains(c int) bool {
	return l.kind == labelRange && l.min <= c && c <= l.max
}

// Intersect Returns the overlap of two ranges, or false if they do not overlap or either is epsilon.
func (l Label) Intersect(o Label) (Label, bool) {
	if l.kind != labelRange || o.kind != labelRange {
		return Label{}, false
	}
	lo, hi := max(l.min, o.min), min(l.max, o.max)
	if lo > hi {
		return Label{}, false
	}
	return Label{min: lo, max: hi, kind: labelRange}, true
}

// Overlaps reports whether l and o share at least one symbol.
func (l Label) Overlaps(o Label) bool {
	_, ok := l.Intersect(o)
	return ok
}

func (l Label) String() string {
	switch l.kind {
	case labelEpsilon:
		return "ε"
	case labelRange:
		b := new(bytes.Buffer)
		appendCharString(b, l.min)
		if l.min != l.max {
			b.WriteByte('-')
			appendCharString(b, l.max)
		}
		return b.String()
	}
	return "<unlabeled>"
}

func appendCharString(b *bytes.Buffer, c int) {
	if c >= 0x21 && c <= 0x7e && c != '\\' && c != '"' {
		b.WriteByte(byte(c))
		return
	}
	if c <= 0xffff {
		fmt.Fprintf(b, "\\u%04x", c)
		return
	}
	fmt.Fprintf(b, "\\U%08x", c)
}

// compareLabels orders ranges by min then max; epsilon sorts first.
func compareLabels(a, b Label) int {
	if a.kind != b.kind {
		return int(b.kind) - int(a.kind)
	}
	if a.min != b.min {
		return a.min - b.min
	}
	return a.max - b.max
}
