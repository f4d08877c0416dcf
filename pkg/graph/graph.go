package graph

import (
	"slices"

	"github.com/matzehuels/archboard/pkg/source"
)

// Edge is a directed dependency from one module to another, by module name.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the module dependency graph. Use [Assemble] to build one.
type Graph struct {
	order      []string
	nodes      map[string]source.ModuleRecord
	edges      []Edge
	outgoing   map[string][]string
	incoming   map[string][]string
	dropped    []Edge
	duplicates []source.ModuleRecord
}

// Assemble builds a Graph from records in scan order.
//
// Each distinct module name becomes one node; when two files map to the same
// name the first one wins and the rest are reported by [Graph.Duplicates].
// Edges are discovered record by record, then import by import, and kept
// only when the target names a node.
func Assemble(records []source.ModuleRecord) *Graph {
	g := &Graph{
		nodes:    make(map[string]source.ModuleRecord, len(records)),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}

	for _, r := range records {
		if _, exists := g.nodes[r.Name]; exists {
			g.duplicates = append(g.duplicates, r)
			continue
		}
		g.nodes[r.Name] = r
		g.order = append(g.order, r.Name)
	}

	for _, name := range g.order {
		for _, imp := range g.nodes[name].Imports {
			e := Edge{From: name, To: imp}
			if _, ok := g.nodes[imp]; !ok {
				g.dropped = append(g.dropped, e)
				continue
			}
			g.edges = append(g.edges, e)
			g.outgoing[name] = append(g.outgoing[name], imp)
			g.incoming[imp] = append(g.incoming[imp], name)
		}
	}
	return g
}

// Node returns the record for name and true, or a zero record and false.
func (g *Graph) Node(name string) (source.ModuleRecord, bool) {
	r, ok := g.nodes[name]
	return r, ok
}

// Nodes returns the node records in discovery order.
func (g *Graph) Nodes() []source.ModuleRecord {
	out := make([]source.ModuleRecord, len(g.order))
	for i, name := range g.order {
		out[i] = g.nodes[name]
	}
	return out
}

// Names returns the node names in discovery order.
func (g *Graph) Names() []string { return slices.Clone(g.order) }

// Edges returns a copy of the edges in discovery order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Dropped returns references whose target is not a scanned module.
func (g *Graph) Dropped() []Edge { return slices.Clone(g.dropped) }

// Duplicates returns records that were not added because an earlier record
// had the same module name.
func (g *Graph) Duplicates() []source.ModuleRecord { return slices.Clone(g.duplicates) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, counting repeats.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the modules name depends on, in edge order.
// The returned slice should not be modified.
func (g *Graph) Children(name string) []string { return g.outgoing[name] }

// Parents returns the modules that depend on name, in edge order.
// The returned slice should not be modified.
func (g *Graph) Parents(name string) []string { return g.incoming[name] }

// OutDegree returns the number of outgoing edges from name.
func (g *Graph) OutDegree(name string) int { return len(g.outgoing[name]) }

// InDegree returns the number of incoming edges to name.
func (g *Graph) InDegree(name string) int { return len(g.incoming[name]) }
