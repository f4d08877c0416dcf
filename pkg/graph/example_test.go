package graph_test

import (
	"fmt"

	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/source"
)

func ExampleAssemble() {
	records := []source.ModuleRecord{
		source.Extract("server.ts", "import express from 'express';\nimport { registerRoutes } from './routes';\nimport { db } from './db';"),
		source.Extract("routes.ts", "export function registerRoutes(app) {}"),
	}

	g := graph.Assemble(records)
	fmt.Println("Nodes:", g.Names())
	fmt.Println("Edges:", g.Edges())
	fmt.Println("Dropped:", g.Dropped())
	// Output:
	// Nodes: [server routes]
	// Edges: [{server routes}]
	// Dropped: [{server db}]
}
