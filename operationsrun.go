package automaton

// Run Returns true if a accepts s. Works on any automaton, deterministic or not.
func Run(a *Automaton, s string) bool {
	return a.Matches(s)
}

type runPosition struct {
	state, pos int
}

// Matches Returns true if some path from the start consumes all of s and ends on an accept state.
// Epsilon transitions are followed without consuming input.
func (a *Automaton) Matches(s string) bool {
	input := []rune(s)
	end := len(input)

	workList := []runPosition{{state: a.start.id, pos: 0}}
	visited := make(map[runPosition]struct{})
	for len(workList) > 0 {
		cur := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}

		if cur.pos == end && a.states[cur.state].IsAccept() {
			return true
		}

		for _, t := range a.out[cur.state] {
			switch {
			case t.Label.IsEpsilon():
				workList = append(workList, runPosition{state: t.Target.id, pos: cur.pos})
			case cur.pos < end && t.Label.Contains(int(input[cur.pos])):
				workList = append(workList, runPosition{state: t.Target.id, pos: cur.pos + 1})
			}
		}
	}
	return false
}
