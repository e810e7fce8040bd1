package automaton

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/emicklei/dot"
	"github.com/google/uuid"
)

// OpKind names the operator that produced a history node.
type OpKind uint8

const (
	OpLeaf OpKind = iota
	OpUnion
	OpIntersection
	OpConcat
	OpOptional
	OpStar
	OpPlus
	OpRepeat
	OpAppend
	OpComplement
	OpMinus
)

var opKindNames = [...]string{
	OpLeaf:         "LEAF",
	OpUnion:        "UNION",
	OpIntersection: "INTERSECTION",
	OpConcat:       "CONCAT",
	OpOptional:     "OPTIONAL",
	OpStar:         "STAR",
	OpPlus:         "PLUS",
	OpRepeat:       "REPEAT",
	OpAppend:       "APPEND",
	OpComplement:   "COMPLEMENT",
	OpMinus:        "MINUS",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", k)
}

// HistoryNode is one automaton in a History together with the operator that produced it.
type HistoryNode struct {
	// ID is the ordinal of the node within its History.
	ID int
	// Ref identifies the node across histories: a node grafted into another history keeps its Ref,
	// and a history holds at most one node per Ref.
	Ref       uuid.UUID
	Kind      OpKind
	Name      string
	Detail    string
	Automaton *Automaton
}

// History records how an automaton was derived: a DAG whose root holds the result and whose edges
// lead from each operator node to the histories of its operands. An operand used more than once is
// shared, not copied. Histories are values: operations return a new History and leave their
// operands untouched.
type History struct {
	nodes    map[int]*HistoryNode
	children map[int][]int
	refs     map[uuid.UUID]int
	root     *HistoryNode
	nextID   int
}

func newHistory() *History {
	return &History{
		nodes:    make(map[int]*HistoryNode),
		children: make(map[int][]int),
		refs:     make(map[uuid.UUID]int),
	}
}

// Track starts a history with a as its only, leaf, node.
func Track(name string, a *Automaton) *History {
	h := newHistory()
	h.root = h.addNode(OpLeaf, name, "", a, uuid.New())
	return h
}

func (h *History) addNode(kind OpKind, name, detail string, a *Automaton, ref uuid.UUID) *HistoryNode {
	n := &HistoryNode{ID: h.nextID, Ref: ref, Kind: kind, Name: name, Detail: detail, Automaton: a}
	h.nextID++
	h.nodes[n.ID] = n
	h.refs[ref] = n.ID
	return n
}

// combine builds the history of result, produced by kind from the given operand histories.
func combine(kind OpKind, detail string, result *Automaton, operands ...*History) *History {
	h := newHistory()
	h.root = h.addNode(kind, "", detail, result, uuid.New())
	for _, o := range operands {
		h.graft(o)
	}
	return h
}

// graft copies the nodes of other that h does not hold yet, matched by Ref, together with their
// edges, and links h's root to other's root.
func (h *History) graft(other *History) {
	smap := make(map[int]int, len(other.nodes))
	var added []int
	for _, n := range other.Nodes() {
		if id, ok := h.refs[n.Ref]; ok {
			smap[n.ID] = id
			continue
		}
		smap[n.ID] = h.addNode(n.Kind, n.Name, n.Detail, n.Automaton, n.Ref).ID
		added = append(added, n.ID)
	}
	// A node already present brings its operands with it, so only new nodes need edges.
	for _, id := range added {
		for _, child := range other.children[id] {
			h.children[smap[id]] = append(h.children[smap[id]], smap[child])
		}
	}
	h.children[h.root.ID] = append(h.children[h.root.ID], smap[other.root.ID])
}

// Lookup Returns the node with the given Ref.
func (h *History) Lookup(ref uuid.UUID) (*HistoryNode, bool) {
	id, ok := h.refs[ref]
	if !ok {
		return nil, false
	}
	return h.nodes[id], true
}

// Root Returns the node holding the final automaton.
func (h *History) Root() *HistoryNode {
	return h.root
}

// Automaton Returns the final automaton.
func (h *History) Automaton() *Automaton {
	return h.root.Automaton
}

// Nodes Returns every node ordered by id.
func (h *History) Nodes() []*HistoryNode {
	ids := slices.Sorted(maps.Keys(h.nodes))
	result := make([]*HistoryNode, len(ids))
	for i, id := range ids {
		result[i] = h.nodes[id]
	}
	return result
}

// Children Returns the operand nodes of the node with the given id, in operand order.
func (h *History) Children(id int) []*HistoryNode {
	ids := h.children[id]
	result := make([]*HistoryNode, len(ids))
	for i, c := range ids {
		result[i] = h.nodes[c]
	}
	return result
}

// Name sets the name of the root node.
func (h *History) Name(name string) *History {
	h.root.Name = name
	return h
}

func (h *History) Union(o *History) *History {
	return combine(OpUnion, "", h.Automaton().Union(o.Automaton()), h, o)
}

func (h *History) Intersect(o *History) *History {
	return combine(OpIntersection, "", h.Automaton().Intersect(o.Automaton()), h, o)
}

func (h *History) Concat(o *History) *History {
	return combine(OpConcat, "", h.Automaton().Concat(o.Automaton()), h, o)
}

func (h *History) Optional() *History {
	return combine(OpOptional, "", h.Automaton().Optional(), h)
}

func (h *History) Star() *History {
	return combine(OpStar, "", h.Automaton().Star(), h)
}

func (h *History) Plus() *History {
	return combine(OpPlus, "", h.Automaton().Plus(), h)
}

func (h *History) Repeat(min, max int) *History {
	return combine(OpRepeat, fmt.Sprintf("{%d,%d}", min, max), h.Automaton().Repeat(min, max), h)
}

func (h *History) Append(label Label) *History {
	return combine(OpAppend, label.String(), h.Automaton().Append(label), h)
}

func (h *History) Complement() *History {
	return combine(OpComplement, "", h.Automaton().Complement(), h)
}

func (h *History) Minus(o *History) *History {
	return combine(OpMinus, "", h.Automaton().Minus(o.Automaton()), h, o)
}

// Graph Returns the DAG as a Graphviz graph: one box per node labeled with its operator, id, short
// Ref and name, one edge from each operator node to each operand.
func (h *History) Graph() *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	nodes := make(map[int]dot.Node, len(h.nodes))
	for _, n := range h.Nodes() {
		label := fmt.Sprintf("%s [%d] %s", n.Kind, n.ID, n.Ref.String()[:8])
		if n.Detail != "" {
			label += " " + n.Detail
		}
		if n.Name != "" {
			label += "\n" + n.Name
		}
		node := g.Node(strconv.Itoa(n.ID)).Label(label).Attr("shape", "box")
		if n == h.root {
			node.Attr("color", "green")
		}
		nodes[n.ID] = node
	}
	for _, n := range h.Nodes() {
		for _, c := range h.children[n.ID] {
			g.Edge(nodes[n.ID], nodes[c])
		}
	}
	return g
}

// WriteDot writes the graph returned by Graph in DOT format.
func (h *History) WriteDot(w io.Writer) error {
	_, err := io.WriteString(w, h.Dot())
	return err
}

// Dot Returns the DOT description of the DAG.
func (h *History) Dot() string {
	return h.Graph().String()
}
