// Package flow provides the core flow-graph domain entities
package flow

import (
	"github.com/fairlight1337/slicknxt/internal/core/node"
)

// Flow is a directed graph of executable nodes. Node insertion order is
// preserved: it is the scheduler's tie-break and cycle-fallback order.
type Flow struct {
	nodes map[string]node.Node
	order []string
	edges []*Edge
}

// New creates an empty flow.
func New() *Flow {
	return &Flow{nodes: make(map[string]node.Node)}
}

// AddNode appends a node, keeping insertion order.
func (f *Flow) AddNode(n node.Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.ID() == "" {
		return ErrInvalidNodeID
	}
	if _, exists := f.nodes[n.ID()]; exists {
		return ErrDuplicateNode
	}
	f.nodes[n.ID()] = n
	f.order = append(f.order, n.ID())
	return nil
}

// AddEdge appends an edge. Edges referencing unknown node IDs are accepted:
// they stay inert during routing and ordering rather than failing the load.
func (f *Flow) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if err := e.Validate(); err != nil {
		return err
	}
	f.edges = append(f.edges, e)
	return nil
}

// Node returns the node with the given ID, or nil.
func (f *Flow) Node(id string) node.Node {
	return f.nodes[id]
}

// NodeIDs returns node IDs in insertion order. The returned slice is shared;
// callers must not mutate it.
func (f *Flow) NodeIDs() []string {
	return f.order
}

// Edges returns the edge sequence in declaration order.
func (f *Flow) Edges() []*Edge {
	return f.edges
}

// Len returns the number of nodes.
func (f *Flow) Len() int {
	return len(f.nodes)
}

// MarkConnected records, on every live target node, which input ports are fed
// by an edge. Connected ports ignore direct user overrides.
func (f *Flow) MarkConnected() {
	for _, e := range f.edges {
		if target, ok := f.nodes[e.Target]; ok {
			target.MarkConnected(e.InputKey())
		}
	}
}
