package automaton

// ByteRunAutomaton Automaton representation for matching raw byte slices, one symbol per byte.
type ByteRunAutomaton struct {
	*RunAutomaton
}

// NewByteRunAutomaton compiles a for byte input. Only transitions in 0..255 can ever match.
func NewByteRunAutomaton(a *Automaton) *ByteRunAutomaton {
	return &ByteRunAutomaton{NewRunAutomaton(a)}
}

// Run Returns true if the given byte slice is accepted.
func (r *ByteRunAutomaton) Run(s []byte) bool {
	p := 0
	for _, b := range s {
		p = r.Step(p, int(b))
		if p == -1 {
			return false
		}
	}
	return r.accept[p]
}
