// Package graph assembles extracted module records into a directed
// dependency graph and serializes it.
//
// # Assembly Policy
//
// Nodes are modules, in the order they were scanned. An edge from A to B is
// kept only when B names a scanned module:
//
//	a.ts imports './b' and './c', only a and c exist  →  edges {(a,c)}
//
// References to modules outside the scanned set are not errors. They are
// collected in [Graph.Dropped] so callers can surface them as diagnostics.
// A module importing itself produces a self edge, and an import repeated in
// the same file produces a repeated edge; neither is special-cased.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "server", "file": "server.ts", "lines": 20}],
//	  "edges": [{"from": "server", "to": "routes"}]
//	}
//
//	data, _ := graph.MarshalGraph(g)
//	graph.WriteGraphFile(g, "graph.json")
//
// # Concurrency
//
// A Graph is immutable once [Assemble] returns and safe for concurrent reads.
package graph
