package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppend_BuildsLiteral(t *testing.T) {
	a := Empty().Append(Char('a')).Append(Char('b')).Append(Char('c')).Determinize()

	assert.True(t, a.IsDeterministic())
	assertMatches(t, a, []string{"abc"}, []string{"", "a", "ab", "abcd", "abd"})
}

func TestAppend(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		az, _ := NewRange('a', 'z')
		a := EpsilonAccepting().Append(az)
		assertMatches(t, a, []string{"a", "q", "z"}, []string{"", "A", "ab"})
	})

	t.Run("union operand", func(t *testing.T) {
		a := mustRegExp(t, "a|bc").Append(Char('!'))
		assertMatches(t, a, []string{"a!", "bc!"}, []string{"a", "bc", "b!"})
	})

	t.Run("invalid label", func(t *testing.T) {
		assert.Panics(t, func() { Empty().Append(Label{}) })
	})
}

func TestConcat_RangeThenStar(t *testing.T) {
	a := mustRange(t, 'a', 'c').Concat(mustRange(t, '0', '9').Star())

	assertMatches(t, a, []string{"a", "b42", "c", "a0123456789"}, []string{"", "42", "d", "ab", "a4b"})
}

func TestConcat_Absorption(t *testing.T) {
	x := defaultAutomata.MakeString("xy")

	assert.True(t, Empty().Concat(x).IsEmptyLanguage())
	assert.True(t, x.Concat(Empty()).IsEmptyLanguage())
	assertSameLanguage(t, x, EpsilonAccepting().Concat(x), "xy", 3)
	assertSameLanguage(t, x, x.Concat(EpsilonAccepting()), "xy", 3)
}

func TestConcatWith_KeepAccept(t *testing.T) {
	a := defaultAutomata.MakeChar('a').ConcatWith(defaultAutomata.MakeChar('b'), false)
	assertMatches(t, a, []string{"a", "ab"}, []string{"", "b", "abb"})

	b := defaultAutomata.MakeChar('a').ConcatWith(Empty(), false)
	assertMatches(t, b, []string{"a"}, []string{""})
}

func TestConcatenate(t *testing.T) {
	a := Concatenate(defaultAutomata.MakeChar('a'), defaultAutomata.MakeString("bc"), defaultAutomata.MakeChar('d'))
	assertMatches(t, a, []string{"abcd"}, []string{"abc", "bcd", ""})

	assertMatches(t, Concatenate(), []string{""}, []string{"a"})
}

func TestUnion(t *testing.T) {
	a := defaultAutomata.MakeString("ab").Union(defaultAutomata.MakeString("ac"))
	assert.True(t, a.IsDeterministic())
	assertMatches(t, a, []string{"ab", "ac"}, []string{"a", "", "abc", "b"})

	all := UnionAll(defaultAutomata.MakeChar('x'), defaultAutomata.MakeChar('y'), EpsilonAccepting())
	assertMatches(t, all, []string{"x", "y", ""}, []string{"xy", "z"})

	assert.True(t, UnionAll().IsEmptyLanguage())
}

func TestIntersect(t *testing.T) {
	t.Run("starts and ends with a", func(t *testing.T) {
		endsWithA := mustRegExp(t, "(a|b)*a")
		startsWithA := mustRegExp(t, "a(a|b)*")
		both := endsWithA.Intersect(startsWithA)

		for _, s := range enumerate("ab", 5) {
			want := len(s) > 0 && s[0] == 'a' && s[len(s)-1] == 'a'
			assert.Equalf(t, want, both.Matches(s), "input %q", s)
		}
	})

	t.Run("overlapping ranges", func(t *testing.T) {
		am := mustRange(t, 'a', 'm').Star()
		hz := mustRange(t, 'h', 'z').Star()
		hm := mustRange(t, 'h', 'm').Star()

		assertSameLanguage(t, hm, am.Intersect(hz), "ahmz", 3)
	})

	t.Run("disjoint", func(t *testing.T) {
		a := defaultAutomata.MakeString("ab").Intersect(defaultAutomata.MakeString("ba"))
		assert.True(t, a.IsEmptyLanguage())
	})

	t.Run("epsilon operands", func(t *testing.T) {
		a := EpsilonAccepting().Intersect(mustRegExp(t, "a*"))
		assertMatches(t, a, []string{""}, []string{"a"})
	})
}

func TestKleeneLaws(t *testing.T) {
	a := mustRegExp(t, "ab|b")

	t.Run("star star", func(t *testing.T) {
		assertSameLanguage(t, a.Star(), a.Star().Star(), "ab", 5)
	})

	t.Run("optional optional", func(t *testing.T) {
		assertSameLanguage(t, a.Optional(), a.Optional().Optional(), "ab", 4)
	})

	t.Run("plus is concat star", func(t *testing.T) {
		assertSameLanguage(t, a.Concat(a.Star()), a.Plus(), "ab", 5)
	})

	t.Run("star accepts empty string", func(t *testing.T) {
		assert.True(t, a.Star().Matches(""))
		assert.True(t, Empty().Star().Matches(""))
		assert.False(t, a.Plus().Matches(""))
	})
}

func TestRepeat(t *testing.T) {
	x := defaultAutomata.MakeChar('x')

	tests := []struct {
		name     string
		min, max int
		accept   []string
		reject   []string
	}{
		{"two to three", 2, 3, []string{"xx", "xxx"}, []string{"", "x", "xxxx"}},
		{"zero to one", 0, 1, []string{"", "x"}, []string{"xx"}},
		{"exactly two", 2, 2, []string{"xx"}, []string{"x", "xxx"}},
		{"zero", 0, 0, []string{""}, []string{"x"}},
		{"min above max", 3, 2, nil, []string{"", "xx", "xxx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMatches(t, x.Repeat(tt.min, tt.max), tt.accept, tt.reject)
		})
	}

	t.Run("empty language", func(t *testing.T) {
		assertMatches(t, Empty().Repeat(0, 2), []string{""}, []string{"x"})
		assert.True(t, Empty().Repeat(1, 2).IsEmptyLanguage())
	})
}

func TestRepeatMin(t *testing.T) {
	a := defaultAutomata.MakeString("ab").RepeatMin(2)
	assertMatches(t, a, []string{"abab", "ababab"}, []string{"", "ab", "aba"})

	assertSameLanguage(t, defaultAutomata.MakeChar('a').Star(), defaultAutomata.MakeChar('a').RepeatMin(0), "ab", 4)
}

func TestOperationsLeaveOperandsUntouched(t *testing.T) {
	a := mustRegExp(t, "ab*")
	b := mustRegExp(t, "c|d")
	states, transitions := a.NumStates(), a.NumTransitions()
	snapshot := a.Copy()

	_ = a.Concat(b)
	_ = a.Union(b)
	_ = a.Intersect(b)
	_ = a.Star()
	_ = a.Plus()
	_ = a.Optional()
	_ = a.Repeat(1, 3)
	_ = a.Append(Char('z'))

	assert.Equal(t, states, a.NumStates())
	assert.Equal(t, transitions, a.NumTransitions())
	assertSameLanguage(t, snapshot, a, "abcdz", 3)
}

func TestOperationsAreDeterministic(t *testing.T) {
	a := mustRegExp(t, "a[a-c]*")
	b := mustRegExp(t, "[b-d]+a?")

	for name, result := range map[string]*Automaton{
		"concat":    a.Concat(b),
		"union":     a.Union(b),
		"intersect": a.Intersect(b),
		"star":      a.Star(),
		"plus":      b.Plus(),
		"optional":  b.Optional(),
		"repeat":    b.Repeat(1, 2),
		"append":    b.Append(Char('x')),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, result.IsDeterministic())
			assertDisjointLabels(t, result)
		})
	}
}

func TestComplement(t *testing.T) {
	tests := []struct {
		name string
		a    *Automaton
	}{
		{"empty", Empty()},
		{"epsilon", EpsilonAccepting()},
		{"any string", defaultAutomata.MakeAnyString()},
		{"ends with abb", mustRegExp(t, "(a|b)*abb")},
		{"overlapping ranges", mustRegExp(t, "[a-c]x|[b-d]+")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.a.Complement()
			assert.True(t, c.IsDeterministic())
			for _, s := range enumerate("abcdx", 3) {
				assert.Equalf(t, !tt.a.Matches(s), c.Matches(s), "input %q", s)
			}
			assert.Equalf(t, !tt.a.Matches("é"), c.Matches("é"), "symbol outside the test alphabet")
			assertSameLanguage(t, tt.a, c.Complement(), "abcdx", 3)
		})
	}

	assert.True(t, defaultAutomata.MakeAnyString().Complement().IsEmptyLanguage())
}

func TestMinus(t *testing.T) {
	a := mustRegExp(t, "[a-c]*")
	b := mustRegExp(t, "(a|b)*abb|c+")
	diff := a.Minus(b)

	for _, s := range enumerate("abcd", 4) {
		assert.Equalf(t, a.Matches(s) && !b.Matches(s), diff.Matches(s), "input %q", s)
	}
	assert.True(t, a.Minus(a).IsEmptyLanguage())
	assertSameLanguage(t, a, a.Minus(Empty()), "abcd", 3)
}
