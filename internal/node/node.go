// Package node implements the vertex/edge graph a network is evaluated over.
//
// Nodes and connections live in two arenas owned by a Graph and refer to each
// other by index, so a connection is visible from both endpoints without the
// graph holding reference cycles.
package node

import (
	"fmt"

	"github.com/FlavioCFOliveira/neurograph/internal/activations"
)

// Type is the layer role of a node.
type Type int

const (
	Input Type = iota + 1
	Hidden
	Output
)

func (t Type) String() string {
	switch t {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Node is one vertex of the graph.
type Node struct {
	Type Type
	Bias float64
	Kind activations.Kind

	// In and Out hold indices into Graph.Conns, in creation order.
	In  []int
	Out []int

	value    float64
	hasValue bool
}

// Connection is a directed weighted edge between two nodes.
type Connection struct {
	Src    int
	Dst    int
	Weight float64
}

// Graph owns every node and connection of a network.
type Graph struct {
	Nodes []Node
	Conns []Connection
}

// AddLayer appends n nodes of the given type and returns their indices.
func (g *Graph) AddLayer(t Type, kind activations.Kind, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Type: t, Kind: kind})
	}
	return idx
}

// Connect creates one connection for every (source, target) pair, source
// major, with its weight drawn from sample. Each connection is registered in
// the source's outgoing list and the target's incoming list.
func (g *Graph) Connect(sources, targets []int, sample func() float64) {
	for _, s := range sources {
		for _, t := range targets {
			c := len(g.Conns)
			g.Conns = append(g.Conns, Connection{Src: s, Dst: t, Weight: sample()})
			g.Nodes[s].Out = append(g.Nodes[s].Out, c)
			g.Nodes[t].In = append(g.Nodes[t].In, c)
		}
	}
}

// SetValue injects a raw value into an input node.
func (g *Graph) SetValue(i int, v float64) {
	n := &g.Nodes[i]
	if n.Type != Input {
		panic(fmt.Sprintf("node: SetValue on %s node %d", n.Type, i))
	}
	n.value = v
	n.hasValue = true
}

// CalculateValue sets the pre-activation value of a hidden or output node to
// bias + sum(weight * source output) over its incoming connections.
func (g *Graph) CalculateValue(i int) {
	n := &g.Nodes[i]
	if n.Type == Input {
		panic(fmt.Sprintf("node: CalculateValue on input node %d", i))
	}
	var sum float64
	for _, c := range n.In {
		conn := &g.Conns[c]
		sum += g.Output(conn.Src) * conn.Weight
	}
	n.value = sum + n.Bias
	n.hasValue = true
}

// Output returns the raw value of an input node or the activated value of
// any other node. Reading a node that was never set or calculated panics.
func (g *Graph) Output(i int) float64 {
	n := &g.Nodes[i]
	if !n.hasValue {
		panic(fmt.Sprintf("node: read of unset %s node %d", n.Type, i))
	}
	if n.Type == Input {
		return n.value
	}
	return n.Kind.Activate(n.value)
}

// Value returns the pre-activation value and whether it has been set.
func (g *Graph) Value(i int) (float64, bool) {
	return g.Nodes[i].value, g.Nodes[i].hasValue
}
