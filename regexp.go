package automaton

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// RegExpKind is the node type of a parsed regular expression.
type RegExpKind int

const (
	REGEXP_UNION         = RegExpKind(iota) // The union of two expressions
	REGEXP_CONCATENATION                    // A sequence of two expressions
	REGEXP_INTERSECTION                     // The intersection of two expressions
	REGEXP_OPTIONAL                         // An optional expression
	REGEXP_REPEAT                           // An expression that repeats
	REGEXP_REPEAT_MIN                       // An expression that repeats a minimum number of times
	REGEXP_REPEAT_MINMAX                    // An expression that repeats a minimum and maximum number of times
	REGEXP_CHAR                             // A Character
	REGEXP_CHAR_CLASS                       // A set of character ranges, possibly negated
	REGEXP_ANYCHAR                          // Any Character allowed
	REGEXP_EMPTY                            // The empty language
	REGEXP_STRING                           // A string expression
	REGEXP_ANYSTRING                        // Any string allowed
	REGEXP_AUTOMATON                        // A named Automaton
	REGEXP_COMPLEMENT                       // The complement of an expression
)

// Syntax flags.
const (
	INTERSECTION           = 0x0001 // enables '&'
	COMPLEMENT             = 0x0002 // enables '~'
	EMPTY                  = 0x0004 // enables '#'
	ANYSTRING              = 0x0008 // enables '@'
	AUTOMATON              = 0x0010 // enables '<name>'
	ALL                    = 0xff
	NONE                   = 0x0000
	ASCII_CASE_INSENSITIVE = 0x0100 // match flag: letters match both cases
)

// RegExp Regular expression node. Supported syntax, loosest binding first:
//
//	union         e1|e2
//	intersection  e1&e2            (INTERSECTION)
//	concatenation e1e2
//	repetition    e? e* e+ e{n} e{n,} e{n,m}
//	complement    ~e               (COMPLEMENT)
//	char class    [a-z0-9] [^abc]
//	simple        . # @ "literal" () (e) <name> c \c
type RegExp struct {
	kind       RegExpKind
	exp1, exp2 *RegExp
	s          string
	c          int
	ranges     []Label
	negate     bool
	min, max   int
	flags      int
}

type regExpOption struct {
	syntaxFlags int
	matchFlags  int
}

type RegExpOption func(*regExpOption)

// WithSyntaxFlags selects the optional syntax; the default is ALL.
func WithSyntaxFlags(flags int) RegExpOption {
	return func(o *regExpOption) {
		o.syntaxFlags = flags
	}
}

// WithMatchFlags sets match flags such as ASCII_CASE_INSENSITIVE.
func WithMatchFlags(flags int) RegExpOption {
	return func(o *regExpOption) {
		o.matchFlags = flags
	}
}

// NewRegExp parses s.
func NewRegExp(s string, options ...RegExpOption) (*RegExp, error) {
	opts := &regExpOption{
		syntaxFlags: ALL,
		matchFlags:  0,
	}
	for _, fn := range options {
		fn(opts)
	}

	if opts.syntaxFlags > ALL || opts.syntaxFlags < 0 {
		return nil, fmt.Errorf("illegal syntax flag: %#x", opts.syntaxFlags)
	}
	if opts.matchFlags > 0 && opts.matchFlags <= ALL {
		return nil, fmt.Errorf("illegal match flag: %#x", opts.matchFlags)
	}

	p := &regExpParser{
		src:   []rune(s),
		flags: opts.syntaxFlags | opts.matchFlags,
	}
	if len(p.src) == 0 {
		return makeString(p.flags, ""), nil
	}

	e, err := p.parseUnionExp()
	if err != nil {
		return nil, err
	}
	if p.more() {
		return nil, p.errorf("end-of-string expected")
	}
	return e, nil
}

// Kind Returns the node type.
func (r *RegExp) Kind() RegExpKind {
	return r.kind
}

func newContainerNode(flags int, kind RegExpKind, exp1, exp2 *RegExp) *RegExp {
	return &RegExp{kind: kind, exp1: exp1, exp2: exp2, flags: flags}
}

func makeUnion(flags int, exp1, exp2 *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_UNION, exp1, exp2)
}

func isLiteral(e *RegExp) bool {
	return e.kind == REGEXP_CHAR || e.kind == REGEXP_STRING
}

func literalText(e *RegExp) string {
	if e.kind == REGEXP_STRING {
		return e.s
	}
	return string(rune(e.c))
}

// makeConcatenation folds adjacent characters and strings into a single string node.
func makeConcatenation(flags int, exp1, exp2 *RegExp) *RegExp {
	if isLiteral(exp1) && isLiteral(exp2) {
		return makeString(flags, literalText(exp1)+literalText(exp2))
	}

	rexp1, rexp2 := exp1, exp2
	if exp1.kind == REGEXP_CONCATENATION && isLiteral(exp1.exp2) && isLiteral(exp2) {
		rexp1 = exp1.exp1
		rexp2 = makeString(flags, literalText(exp1.exp2)+literalText(exp2))
	} else if isLiteral(exp1) && exp2.kind == REGEXP_CONCATENATION && isLiteral(exp2.exp1) {
		rexp1 = makeString(flags, literalText(exp1)+literalText(exp2.exp1))
		rexp2 = exp2.exp2
	}
	return newContainerNode(flags, REGEXP_CONCATENATION, rexp1, rexp2)
}

func makeIntersection(flags int, exp1, exp2 *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_INTERSECTION, exp1, exp2)
}

func makeComplement(flags int, exp *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_COMPLEMENT, exp, nil)
}

func makeOptional(flags int, exp *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_OPTIONAL, exp, nil)
}

func makeRepeat(flags int, exp *RegExp) *RegExp {
	return newContainerNode(flags, REGEXP_REPEAT, exp, nil)
}

func makeRepeatMin(flags int, exp *RegExp, min int) *RegExp {
	return &RegExp{kind: REGEXP_REPEAT_MIN, exp1: exp, min: min, flags: flags}
}

func makeRepeatRange(flags int, exp *RegExp, min, max int) *RegExp {
	return &RegExp{kind: REGEXP_REPEAT_MINMAX, exp1: exp, min: min, max: max, flags: flags}
}

func makeChar(flags int, c int) *RegExp {
	return &RegExp{kind: REGEXP_CHAR, c: c, flags: flags}
}

func makeCharClass(flags int, ranges []Label, negate bool) *RegExp {
	return &RegExp{kind: REGEXP_CHAR_CLASS, ranges: ranges, negate: negate, flags: flags}
}

func makeAnyChar(flags int) *RegExp {
	return newContainerNode(flags, REGEXP_ANYCHAR, nil, nil)
}

func makeEmpty(flags int) *RegExp {
	return newContainerNode(flags, REGEXP_EMPTY, nil, nil)
}

func makeString(flags int, s string) *RegExp {
	return &RegExp{kind: REGEXP_STRING, s: s, flags: flags}
}

func makeAnyString(flags int) *RegExp {
	return newContainerNode(flags, REGEXP_ANYSTRING, nil, nil)
}

func makeAutomaton(flags int, name string) *RegExp {
	return &RegExp{kind: REGEXP_AUTOMATON, s: name, flags: flags}
}

func (r *RegExp) check(flags int) bool {
	return r.flags&flags != 0
}

// Provider resolves a named automaton referenced as <name>.
type Provider func(name string) (*Automaton, error)

type toAutomatonOption struct {
	automata map[string]*Automaton
	provider Provider
	minimize bool
}

type ToAutomatonOption func(*toAutomatonOption)

// WithAutomata supplies named automata for <name> references.
func WithAutomata(automata map[string]*Automaton) ToAutomatonOption {
	return func(o *toAutomatonOption) {
		o.automata = automata
	}
}

// WithProvider supplies a fallback resolver for <name> references.
func WithProvider(provider Provider) ToAutomatonOption {
	return func(o *toAutomatonOption) {
		o.provider = provider
	}
}

// WithoutMinimize keeps the deterministic intermediate results instead of minimizing them.
func WithoutMinimize() ToAutomatonOption {
	return func(o *toAutomatonOption) {
		o.minimize = false
	}
}

// ToAutomaton Builds a deterministic automaton for the expression.
func (r *RegExp) ToAutomaton(options ...ToAutomatonOption) (*Automaton, error) {
	h, err := r.ToHistory(options...)
	if err != nil {
		return nil, err
	}
	return h.Automaton(), nil
}

// ToHistory Builds the automaton for the expression and records every intermediate automaton.
func (r *RegExp) ToHistory(options ...ToAutomatonOption) (*History, error) {
	opts := &toAutomatonOption{minimize: true}
	for _, fn := range options {
		fn(opts)
	}
	return r.toHistoryInternal(opts)
}

func (r *RegExp) finish(opts *toAutomatonOption, a *Automaton) *Automaton {
	if opts.minimize {
		a.Minimize()
	}
	return a
}

func (r *RegExp) toHistoryInternal(opts *toAutomatonOption) (*History, error) {
	switch r.kind {
	case REGEXP_UNION, REGEXP_CONCATENATION:
		var list []*History
		if err := r.findLeaves(r, r.kind, &list, opts); err != nil {
			return nil, err
		}
		automata := make([]*Automaton, len(list))
		for i, h := range list {
			automata[i] = h.Automaton()
		}
		if r.kind == REGEXP_UNION {
			return combine(OpUnion, "", r.finish(opts, UnionAll(automata...)), list...), nil
		}
		return combine(OpConcat, "", r.finish(opts, Concatenate(automata...)), list...), nil

	case REGEXP_INTERSECTION:
		h1, err := r.exp1.toHistoryInternal(opts)
		if err != nil {
			return nil, err
		}
		h2, err := r.exp2.toHistoryInternal(opts)
		if err != nil {
			return nil, err
		}
		a := r.finish(opts, h1.Automaton().Intersect(h2.Automaton()))
		return combine(OpIntersection, "", a, h1, h2), nil

	case REGEXP_COMPLEMENT:
		h1, err := r.exp1.toHistoryInternal(opts)
		if err != nil {
			return nil, err
		}
		return combine(OpComplement, "", r.finish(opts, h1.Automaton().Complement()), h1), nil

	case REGEXP_OPTIONAL, REGEXP_REPEAT, REGEXP_REPEAT_MIN, REGEXP_REPEAT_MINMAX:
		h1, err := r.exp1.toHistoryInternal(opts)
		if err != nil {
			return nil, err
		}
		a1 := h1.Automaton()
		switch r.kind {
		case REGEXP_OPTIONAL:
			return combine(OpOptional, "", r.finish(opts, a1.Optional()), h1), nil
		case REGEXP_REPEAT:
			return combine(OpStar, "", r.finish(opts, a1.Star()), h1), nil
		case REGEXP_REPEAT_MIN:
			if r.min == 1 {
				return combine(OpPlus, "", r.finish(opts, a1.Plus()), h1), nil
			}
			return combine(OpRepeat, fmt.Sprintf("{%d,}", r.min), r.finish(opts, a1.RepeatMin(r.min)), h1), nil
		default:
			return combine(OpRepeat, fmt.Sprintf("{%d,%d}", r.min, r.max), r.finish(opts, a1.Repeat(r.min, r.max)), h1), nil
		}

	case REGEXP_CHAR:
		if r.check(ASCII_CASE_INSENSITIVE) {
			return Track(r.String(), caseInsensitiveChar(r.c)), nil
		}
		return Track(r.String(), defaultAutomata.MakeChar(r.c)), nil

	case REGEXP_CHAR_CLASS:
		if r.negate {
			return Track(r.String(), defaultAutomata.MakeNotCharSet(r.ranges...)), nil
		}
		return Track(r.String(), defaultAutomata.MakeCharSet(r.ranges...)), nil

	case REGEXP_ANYCHAR:
		return Track(r.String(), defaultAutomata.MakeAnyChar()), nil

	case REGEXP_EMPTY:
		return Track(r.String(), defaultAutomata.MakeEmpty()), nil

	case REGEXP_STRING:
		if r.check(ASCII_CASE_INSENSITIVE) {
			return Track(r.String(), r.finish(opts, caseInsensitiveString(r.s))), nil
		}
		return Track(r.String(), defaultAutomata.MakeString(r.s)), nil

	case REGEXP_ANYSTRING:
		return Track(r.String(), defaultAutomata.MakeAnyString()), nil

	case REGEXP_AUTOMATON:
		var a *Automaton
		if opts.automata != nil {
			a = opts.automata[r.s]
		}
		if a == nil && opts.provider != nil {
			var err error
			if a, err = opts.provider(r.s); err != nil {
				return nil, fmt.Errorf("resolving <%s>: %w", r.s, err)
			}
		}
		if a == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAutomaton, r.s)
		}
		return Track(r.String(), a.Copy()), nil
	}
	return nil, fmt.Errorf("unknown expression kind %d", r.kind)
}

// findLeaves collects the operands of a chain of nodes of the same kind, left to right.
func (r *RegExp) findLeaves(exp *RegExp, kind RegExpKind, list *[]*History, opts *toAutomatonOption) error {
	if exp.kind == kind {
		if err := r.findLeaves(exp.exp1, kind, list, opts); err != nil {
			return err
		}
		return r.findLeaves(exp.exp2, kind, list, opts)
	}
	h, err := exp.toHistoryInternal(opts)
	if err != nil {
		return err
	}
	*list = append(*list, h)
	return nil
}

func caseInsensitiveChar(c int) *Automaton {
	// For now we only work with ASCII characters
	alt := c
	if c < 128 {
		if unicode.IsLower(rune(c)) {
			alt = int(unicode.ToUpper(rune(c)))
		} else if unicode.IsUpper(rune(c)) {
			alt = int(unicode.ToLower(rune(c)))
		}
	}
	return defaultAutomata.MakeCharSet(Char(c), Char(alt))
}

func caseInsensitiveString(s string) *Automaton {
	list := make([]*Automaton, 0, len(s))
	for _, c := range s {
		list = append(list, caseInsensitiveChar(int(c)))
	}
	return Concatenate(list...)
}

// String Returns a fully parenthesized form of the expression.
func (r *RegExp) String() string {
	var b strings.Builder
	r.toStringBuilder(&b)
	return b.String()
}

func (r *RegExp) toStringBuilder(b *strings.Builder) {
	switch r.kind {
	case REGEXP_UNION:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteByte('|')
		r.exp2.toStringBuilder(b)
		b.WriteByte(')')
	case REGEXP_CONCATENATION:
		r.exp1.toStringBuilder(b)
		r.exp2.toStringBuilder(b)
	case REGEXP_INTERSECTION:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteByte('&')
		r.exp2.toStringBuilder(b)
		b.WriteByte(')')
	case REGEXP_COMPLEMENT:
		b.WriteString("~(")
		r.exp1.toStringBuilder(b)
		b.WriteByte(')')
	case REGEXP_OPTIONAL:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteString(")?")
	case REGEXP_REPEAT:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		b.WriteString(")*")
	case REGEXP_REPEAT_MIN:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		fmt.Fprintf(b, "){%d,}", r.min)
	case REGEXP_REPEAT_MINMAX:
		b.WriteByte('(')
		r.exp1.toStringBuilder(b)
		fmt.Fprintf(b, "){%d,%d}", r.min, r.max)
	case REGEXP_CHAR:
		writeEscapedChar(b, r.c)
	case REGEXP_CHAR_CLASS:
		b.WriteByte('[')
		if r.negate {
			b.WriteByte('^')
		}
		for _, l := range r.ranges {
			writeEscapedChar(b, l.min)
			if l.min != l.max {
				b.WriteByte('-')
				writeEscapedChar(b, l.max)
			}
		}
		b.WriteByte(']')
	case REGEXP_ANYCHAR:
		b.WriteByte('.')
	case REGEXP_EMPTY:
		b.WriteByte('#')
	case REGEXP_STRING:
		b.WriteString(strconv.Quote(r.s))
	case REGEXP_ANYSTRING:
		b.WriteByte('@')
	case REGEXP_AUTOMATON:
		b.WriteString("<" + r.s + ">")
	}
}

func writeEscapedChar(b *strings.Builder, c int) {
	if strings.ContainsRune(`|&?*+{}()[]^-.#@"<>\~`, rune(c)) {
		b.WriteByte('\\')
	}
	b.WriteRune(rune(c))
}

// regExpParser is a recursive-descent parser over the runes of an expression.
type regExpParser struct {
	src   []rune
	pos   int
	flags int
}

func (p *regExpParser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *regExpParser) more() bool {
	return p.pos < len(p.src)
}

func (p *regExpParser) peek(s string) bool {
	return p.more() && strings.ContainsRune(s, p.src[p.pos])
}

func (p *regExpParser) match(c rune) bool {
	if p.more() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *regExpParser) next() (int, error) {
	if !p.more() {
		return 0, p.errorf("unexpected end-of-string")
	}
	c := p.src[p.pos]
	p.pos++
	return int(c), nil
}

func (p *regExpParser) check(flags int) bool {
	return p.flags&flags != 0
}

func (p *regExpParser) parseUnionExp() (*RegExp, error) {
	e, err := p.parseInterExp()
	if err != nil {
		return nil, err
	}
	if p.match('|') {
		e2, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		e = makeUnion(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseInterExp() (*RegExp, error) {
	e, err := p.parseConcatExp()
	if err != nil {
		return nil, err
	}
	if p.check(INTERSECTION) && p.match('&') {
		e2, err := p.parseInterExp()
		if err != nil {
			return nil, err
		}
		e = makeIntersection(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseConcatExp() (*RegExp, error) {
	e, err := p.parseRepeatExp()
	if err != nil {
		return nil, err
	}
	if p.more() && !p.peek(")|") && (!p.check(INTERSECTION) || !p.peek("&")) {
		e2, err := p.parseConcatExp()
		if err != nil {
			return nil, err
		}
		e = makeConcatenation(p.flags, e, e2)
	}
	return e, nil
}

func (p *regExpParser) parseInt() (int, bool, error) {
	start := p.pos
	for p.peek("0123456789") {
		p.pos++
	}
	if start == p.pos {
		return 0, false, nil
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		return 0, false, p.errorf("bad repetition count: %v", err)
	}
	return n, true, nil
}

func (p *regExpParser) parseRepeatExp() (*RegExp, error) {
	e, err := p.parseComplExp()
	if err != nil {
		return nil, err
	}

	for p.peek("?*+{") {
		switch {
		case p.match('?'):
			e = makeOptional(p.flags, e)
		case p.match('*'):
			e = makeRepeat(p.flags, e)
		case p.match('+'):
			e = makeRepeatMin(p.flags, e, 1)
		case p.match('{'):
			n, ok, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, p.errorf("integer expected")
			}
			m, bounded := n, true
			if p.match(',') {
				if m, bounded, err = p.parseInt(); err != nil {
					return nil, err
				}
			}
			if !p.match('}') {
				return nil, p.errorf("expected '}'")
			}
			if !bounded {
				e = makeRepeatMin(p.flags, e, n)
			} else if m < n {
				return nil, p.errorf("invalid repetition range {%d,%d}", n, m)
			} else {
				e = makeRepeatRange(p.flags, e, n, m)
			}
		}
	}

	return e, nil
}

func (p *regExpParser) parseComplExp() (*RegExp, error) {
	if p.check(COMPLEMENT) && p.match('~') {
		e, err := p.parseComplExp()
		if err != nil {
			return nil, err
		}
		return makeComplement(p.flags, e), nil
	}
	return p.parseCharClassExp()
}

func (p *regExpParser) parseCharClassExp() (*RegExp, error) {
	if !p.match('[') {
		return p.parseSimpleExp()
	}
	negate := p.match('^')
	var ranges []Label
	for {
		r, err := p.parseCharClass()
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
		if !p.more() || p.peek("]") {
			break
		}
	}
	if !p.match(']') {
		return nil, p.errorf("expected ']'")
	}
	return makeCharClass(p.flags, ranges, negate), nil
}

func (p *regExpParser) parseCharClass() (Label, error) {
	c, err := p.parseCharExp()
	if err != nil {
		return Label{}, err
	}
	if p.match('-') {
		d, err := p.parseCharExp()
		if err != nil {
			return Label{}, err
		}
		l, err := NewRange(c, d)
		if err != nil {
			return Label{}, p.errorf("%v", err)
		}
		return l, nil
	}
	return Char(c), nil
}

func (p *regExpParser) parseSimpleExp() (*RegExp, error) {
	switch {
	case p.match('.'):
		return makeAnyChar(p.flags), nil
	case p.check(EMPTY) && p.match('#'):
		return makeEmpty(p.flags), nil
	case p.check(ANYSTRING) && p.match('@'):
		return makeAnyString(p.flags), nil
	case p.match('"'):
		start := p.pos
		for p.more() && !p.peek(`"`) {
			p.pos++
		}
		if !p.match('"') {
			return nil, p.errorf("expected '\"'")
		}
		return makeString(p.flags, string(p.src[start:p.pos-1])), nil
	case p.match('('):
		if p.match(')') {
			return makeString(p.flags, ""), nil
		}
		e, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		if !p.match(')') {
			return nil, p.errorf("expected ')'")
		}
		return e, nil
	case p.check(AUTOMATON) && p.match('<'):
		start := p.pos
		for p.more() && !p.peek(">") {
			p.pos++
		}
		if !p.match('>') {
			return nil, p.errorf("expected '>'")
		}
		return makeAutomaton(p.flags, string(p.src[start:p.pos-1])), nil
	}

	c, err := p.parseCharExp()
	if err != nil {
		return nil, err
	}
	return makeChar(p.flags, c), nil
}

func (p *regExpParser) parseCharExp() (int, error) {
	p.match('\\')
	return p.next()
}
