package automaton

import (
	"io"
	"strconv"

	"github.com/emicklei/dot"
)

// Graph Returns a Graphviz graph of the automaton: one node per state labeled with its id,
// doublecircle for accept states, green border for the start state, and one edge per transition
// labeled with its Label.
func (a *Automaton) Graph() *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[int]dot.Node, len(a.states))
	for _, s := range a.States() {
		n := g.Node(strconv.Itoa(s.id)).Attr("shape", "circle")
		if s.IsAccept() {
			n.Attr("shape", "doublecircle")
		}
		if s == a.start {
			n.Attr("color", "green")
		}
		nodes[s.id] = n
	}

	for _, t := range a.Transitions() {
		g.Edge(nodes[t.Source.id], nodes[t.Target.id]).Label(t.Label.String())
	}
	return g
}

// WriteDot writes the graph returned by Graph in DOT format.
func (a *Automaton) WriteDot(w io.Writer) error {
	_, err := io.WriteString(w, a.Dot())
	return err
}

// Dot Returns the DOT description of the automaton.
func (a *Automaton) Dot() string {
	return a.Graph().String()
}
