package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/layout"
	"github.com/matzehuels/archboard/pkg/observability"
	"github.com/matzehuels/archboard/pkg/source"
)

// Flusher is implemented by adapters that buffer commands and write them
// out once emission has finished (file sinks).
type Flusher interface {
	Flush(ctx context.Context) error
}

// Runner encapsulates pipeline execution against one adapter.
//
// The Runner holds no per-run state; each Execute call owns its graph,
// plan and identifier map.
type Runner struct {
	Adapter diagram.Adapter
	Logger  *log.Logger
}

// NewRunner creates a runner for the given adapter.
// If logger is nil, the default logger is used.
func NewRunner(adapter diagram.Adapter, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Adapter: adapter, Logger: logger}
}

// Analyze runs scan → extract → assemble → layout. It performs no adapter calls.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Analysis, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, opts.SourceDir)
	start := time.Now()

	a, err := r.analyze(ctx, opts)
	nodes, edges := 0, 0
	if a != nil {
		nodes, edges = a.Graph.NodeCount(), a.Graph.EdgeCount()
	}
	hooks.OnAnalyzeComplete(ctx, opts.SourceDir, nodes, edges, time.Since(start), err)
	return a, err
}

func (r *Runner) analyze(ctx context.Context, opts Options) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := source.Load(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	opts.Logger.Debug("scanned modules", "dir", opts.SourceDir, "modules", len(records))

	g := graph.Assemble(records)
	for _, d := range g.Duplicates() {
		opts.Logger.Warn("duplicate module name, keeping first file", "module", d.Name, "file", d.FileName)
	}
	for _, e := range g.Dropped() {
		opts.Logger.Debug("import does not name a scanned module", "from", e.From, "import", e.To)
	}

	engine, err := layout.New(opts.Layout, g, opts.Spacing)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	positions := engine.Place(g.Names())

	opts.Logger.Info("analyzed modules",
		"modules", g.NodeCount(),
		"edges", g.EdgeCount(),
		"dropped", len(g.Dropped()),
		"layout", opts.Layout)

	return &Analysis{Records: records, Graph: g, Positions: positions}, nil
}

// Execute runs the complete analyze → plan → emit pipeline.
// Errors from the adapter abort the run; the partial result is returned
// alongside the error so callers can report what was created.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if r.Adapter == nil {
		return nil, errors.New(errors.ErrCodeInternal, "runner has no adapter")
	}

	result := &Result{}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	a, err := r.Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Analysis = a
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.ModuleCount = a.Graph.NodeCount()
	result.Stats.EdgeCount = a.Graph.EdgeCount()
	result.Stats.DroppedCount = len(a.Graph.Dropped())

	// Stage 2: Plan
	result.Plan = diagram.Plan(a.Graph, a.Positions, opts.PlanOptions())
	result.Stats.CommandCount = len(result.Plan)

	// Stage 3: Emit
	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, len(result.Plan))
	emitStart := time.Now()

	emitter := &diagram.Emitter{Adapter: r.Adapter, Logger: opts.Logger, Concurrency: opts.Concurrency}
	emitted, err := emitter.Emit(ctx, result.Plan)
	result.Emit = emitted
	if err == nil {
		if f, ok := r.Adapter.(Flusher); ok {
			err = f.Flush(ctx)
		}
	}
	result.Stats.EmitTime = time.Since(emitStart)

	boardID := ""
	if emitted != nil {
		boardID = emitted.Board.ID
	}
	hooks.OnEmitComplete(ctx, boardID, result.Stats.EmitTime, err)
	if err != nil {
		return result, fmt.Errorf("emit: %w", err)
	}

	opts.Logger.Info("emitted diagram",
		"board", emitted.Board.ID,
		"nodes", emitted.Nodes,
		"annotations", emitted.Annotations,
		"connectors", emitted.Connectors,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil && r.Logger != nil {
		opts.Logger = r.Logger
	}
}
