package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the node-link wire format of a Graph.
type Document struct {
	Nodes   []NodeDoc `json:"nodes"`
	Edges   []Edge    `json:"edges"`
	Dropped []Edge    `json:"dropped,omitempty"`
}

// NodeDoc is one serialized node.
type NodeDoc struct {
	ID      string   `json:"id"`
	File    string   `json:"file"`
	Lines   int      `json:"lines"`
	Exports []string `json:"exports,omitempty"`
}

// ToDocument converts g to its wire format, preserving discovery order.
func ToDocument(g *Graph) Document {
	doc := Document{
		Nodes:   make([]NodeDoc, 0, g.NodeCount()),
		Edges:   g.Edges(),
		Dropped: g.Dropped(),
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	for _, r := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:      r.Name,
			File:    r.FileName,
			Lines:   r.Lines,
			Exports: r.Exports,
		})
	}
	return doc
}

// MarshalGraph converts g to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to a JSON file created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
