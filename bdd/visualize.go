package bdd

import (
	"fmt"

	"github.com/adiar-go/adiar/ptr"
)

// DiagramVertex is one exported vertex of a ToGraph export: either a
// surviving internal node (ID like "L2#0") or one of the two sinks
// ("sink(true)"/"sink(false)").
type DiagramVertex struct {
	ID string
	// Level and IsSink describe what the ID encodes, spelled out for
	// callers that want to lay vertices out by level without re-parsing
	// ID themselves. Level is meaningless when IsSink is true.
	Level  int
	IsSink bool
}

// DiagramEdge is one low/high child edge between two DiagramVertex IDs.
// High distinguishes which of the node's two slots this edge is, the
// diagram analogue of a weighted edge in a general-purpose graph export.
type DiagramEdge struct {
	From, To string
	High     bool
}

// DiagramGraph is a debug/visualization export of a reduced node file: one
// vertex per surviving node plus one per distinct sink value actually
// reached, one edge per low/high child. It is a pure export — nothing
// reads a DiagramGraph back into a Handle.
type DiagramGraph struct {
	vertices map[string]DiagramVertex
	order    []string
	edges    []DiagramEdge
}

// HasVertex reports whether id names a vertex in the graph.
func (g *DiagramGraph) HasVertex(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

// Vertices returns every vertex, in first-seen order (root first).
func (g *DiagramGraph) Vertices() []DiagramVertex {
	out := make([]DiagramVertex, len(g.order))
	for i, id := range g.order {
		out[i] = g.vertices[id]
	}
	return out
}

// Edges returns every low/high child edge.
func (g *DiagramGraph) Edges() []DiagramEdge { return g.edges }

func sinkID(v bool) string {
	if v {
		return "sink(true)"
	}
	return "sink(false)"
}

func vertexFor(p ptr.Ptr) DiagramVertex {
	if ptr.IsSink(p) {
		return DiagramVertex{ID: sinkID(ptr.Value(p)), IsSink: true}
	}
	return DiagramVertex{ID: fmt.Sprintf("L%d#%d", ptr.Level(p), ptr.ID(p)), Level: ptr.Level(p)}
}

// ToGraph renders h's reduced node file as a DiagramGraph for debugging
// and visualization.
func (h Handle) ToGraph() *DiagramGraph {
	g := &DiagramGraph{vertices: map[string]DiagramVertex{}}

	ensure := func(p ptr.Ptr) DiagramVertex {
		v := vertexFor(p)
		if _, ok := g.vertices[v.ID]; !ok {
			g.vertices[v.ID] = v
			g.order = append(g.order, v.ID)
		}
		return v
	}

	idx, root := h.resolvedIndex()
	ensure(root)
	for _, n := range idx {
		from := ensure(n.UID)
		low := ensure(n.Low)
		high := ensure(n.High)
		g.edges = append(g.edges, DiagramEdge{From: from.ID, To: low.ID, High: false})
		g.edges = append(g.edges, DiagramEdge{From: from.ID, To: high.ID, High: true})
	}
	return g
}
