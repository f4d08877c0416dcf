// Package pkg provides the core libraries for archboard module diagrams.
//
// # Overview
//
// archboard turns a directory of TypeScript/JavaScript modules into a
// whiteboard diagram: one node per module, a note listing its exports, and a
// curved connector per relative import. The pkg directory is organized into
// four areas:
//
//  1. [source], [graph], [layout] - Analysis (scan, extract, assemble, place)
//  2. [diagram] - Drawing commands, the adapter contract and the emitter
//  3. [whiteboard] - Adapters (Miro REST, Graphviz files, Redis streams)
//  4. [pipeline] - Orchestration (analyze → plan → emit)
//
// Supporting packages: [errors] for coded errors, [httputil] for retries and
// status handling, [observability] for hooks, [buildinfo] for versioning.
//
// # Architecture
//
//	Source directory (*.ts, *.js)
//	         ↓
//	    [source] package (module records: imports, exports, lines)
//	         ↓
//	    [graph] package (dependency graph, discovery order)
//	         ↓
//	    [layout] package (positions)
//	         ↓
//	    [diagram] package (plan → emit)
//	         ↓
//	    [whiteboard] adapter (Miro, DOT/SVG, Redis)
//
// # Quick Start
//
//	client, err := miro.NewClient(os.Getenv("MIRO_API_TOKEN"))
//	if err != nil {
//	    return err
//	}
//	result, err := pipeline.NewRunner(client, logger).Execute(ctx, pipeline.Options{
//	    SourceDir: "src",
//	    Link:      os.Getenv("GITHUB_URL"),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Emit.Board.ViewURL)
//
// [source]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/source
// [graph]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/layout
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/diagram
// [whiteboard]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/whiteboard
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/archboard/pkg/buildinfo
package pkg
