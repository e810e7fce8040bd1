package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	l, err := NewRange('a', 'z')
	require.NoError(t, err)
	assert.Equal(t, 'a', rune(l.Min()))
	assert.Equal(t, 'z', rune(l.Max()))
	assert.False(t, l.IsEpsilon())

	for _, tc := range []struct{ lo, hi int }{{'z', 'a'}, {-1, 5}, {0, MaxSymbol + 1}} {
		_, err := NewRange(tc.lo, tc.hi)
		assert.ErrorIs(t, err, ErrInvalidRange)
	}
}

func TestLabel_Intersect(t *testing.T) {
	az, _ := NewRange('a', 'z')
	mz, _ := NewRange('m', 'z')
	digits, _ := NewRange('0', '9')

	tests := []struct {
		name   string
		l, o   Label
		want   Label
		wantOK bool
	}{
		{"overlap", az, mz, mz, true},
		{"same", az, az, az, true},
		{"single", az, Char('q'), Char('q'), true},
		{"disjoint", az, digits, Label{}, false},
		{"epsilon left", Epsilon(), az, Label{}, false},
		{"epsilon both", Epsilon(), Epsilon(), Label{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.l.Intersect(tt.o)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, tt.o.Overlaps(tt.l))
		})
	}
}

func TestLabel_Contains(t *testing.T) {
	az, _ := NewRange('a', 'z')
	assert.True(t, az.Contains('a'))
	assert.True(t, az.Contains('z'))
	assert.False(t, az.Contains('A'))
	assert.False(t, Epsilon().Contains(0))
	assert.False(t, Label{}.Contains(0))
}

func TestLabel_Equality(t *testing.T) {
	a1, _ := NewRange('a', 'c')
	a2, _ := NewRange('a', 'c')
	assert.True(t, a1 == a2)
	assert.False(t, a1 == Char('a'))
	assert.True(t, Epsilon() == Epsilon())
	assert.False(t, Label{} == Epsilon())

	set := map[Label]int{a1: 1}
	set[a2]++
	assert.Len(t, set, 1)
}

func TestLabel_String(t *testing.T) {
	az, _ := NewRange('a', 'z')
	assert.Equal(t, "a-z", az.String())
	assert.Equal(t, "x", Char('x').String())
	assert.Equal(t, "ε", Epsilon().String())
	assert.Equal(t, `\u0020`, Char(' ').String())
	assert.Equal(t, `\u0022`, Char('"').String())
	assert.Equal(t, `\U0001f600`, Char(0x1f600).String())
}

func TestChar(t *testing.T) {
	assert.Equal(t, MinSymbol, Char(MinSymbol).Min())
	assert.Equal(t, MaxSymbol, Char(MaxSymbol).Max())
	assert.Panics(t, func() { Char(-1) })
	assert.Panics(t, func() { Char(MaxSymbol + 1) })
}
