package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archboard/internal/config"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/observability"
	"github.com/matzehuels/archboard/pkg/pipeline"
)

// diagramFlags holds the flags of the diagram command. Only flags the user
// set explicitly override the loaded configuration.
type diagramFlags struct {
	dir         string
	title       string
	link        string
	linkLabel   string
	layout      string
	spacing     float64
	concurrency int
	retries     int
	adapter     string
	output      string
	redisAddr   string
	stream      string
	miroURL     string
	quiet       bool
}

// diagramCommand creates the diagram command.
func (c *CLI) diagramCommand() *cobra.Command {
	var flags diagramFlags

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Analyze a source directory and draw its modules on a board",
		Long: `Analyze a source directory and draw its modules on a board.

Each .ts or .js file becomes a module node colored by name, with a
note listing its exported symbols. Each relative import between modules
becomes a curved "imports" connector.

By default the board is created on Miro (requires MIRO_API_TOKEN). Use
--adapter dot or svg to write a Graphviz file, redis to publish the drawing
commands to a Redis stream, or dry-run to only count them.`,
		Example: `  # Draw ./src on a new Miro board
  archboard diagram

  # Custom directory and title, four module requests in flight
  archboard diagram --dir web/src --title "Web Architecture" --concurrency 4

  # Offline SVG
  archboard diagram --adapter svg -o architecture.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyDiagramFlags(cmd, &flags, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runDiagram(cmd.Context(), cfg, flags.adapter, flags.quiet)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", pipeline.DefaultSourceDir, "source directory to scan")
	cmd.Flags().StringVarP(&flags.title, "title", "t", pipeline.DefaultTitle, "board title")
	cmd.Flags().StringVar(&flags.link, "link", "", "repository URL shown under the title")
	cmd.Flags().StringVar(&flags.linkLabel, "link-label", "", "label of the link node")
	cmd.Flags().StringVar(&flags.layout, "layout", pipeline.DefaultLayout, "layout engine: row, layered")
	cmd.Flags().Float64Var(&flags.spacing, "spacing", pipeline.DefaultSpacing, "horizontal distance between modules")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 1, "module nodes created in parallel")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "retries per request on transient failures")
	cmd.Flags().StringVarP(&flags.adapter, "adapter", "a", adapterMiro, "target: miro, dot, svg, redis, dry-run")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file for dot and svg adapters")
	cmd.Flags().StringVar(&flags.redisAddr, "redis-addr", "", "Redis address for the redis adapter")
	cmd.Flags().StringVar(&flags.stream, "stream", "", "Redis stream key (default: derived from the title)")
	cmd.Flags().StringVar(&flags.miroURL, "miro-url", "", "Miro API base URL")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "no spinner")

	return cmd
}

func applyDiagramFlags(cmd *cobra.Command, f *diagramFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.Source.Dir = f.dir
	}
	if changed("title") {
		cfg.Board.Title = f.title
	}
	if changed("link") {
		cfg.Board.Link = f.link
	}
	if changed("link-label") {
		cfg.Board.LinkLabel = f.linkLabel
	}
	if changed("layout") {
		cfg.Layout.Engine = f.layout
	}
	if changed("spacing") {
		cfg.Layout.Spacing = f.spacing
	}
	if changed("concurrency") {
		cfg.Emit.Concurrency = f.concurrency
	}
	if changed("retries") {
		cfg.Emit.Retries = f.retries
	}
	if changed("output") {
		cfg.Output.Path = f.output
	}
	if changed("redis-addr") {
		cfg.Redis.Addr = f.redisAddr
	}
	if changed("stream") {
		cfg.Redis.Stream = f.stream
	}
	if changed("miro-url") {
		cfg.Miro.APIURL = f.miroURL
	}
}

func (c *CLI) runDiagram(ctx context.Context, cfg *config.Config, adapterName string, quiet bool) error {
	adapter, closeAdapter, err := c.newAdapter(adapterName, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeAdapter(); err != nil {
			c.Logger.Warn("close adapter", "error", err)
		}
	}()

	opts := cfg.PipelineOptions()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, out, fmt.Sprintf("Scanning %s...", opts.SourceDir))
	if !quiet {
		spinner.Start()
	}
	hooks := &progressHooks{spinner: spinner}
	observability.SetPipelineHooks(hooks)
	observability.SetDispatchHooks(hooks)
	defer observability.Reset()

	result, err := pipeline.NewRunner(adapter, c.Logger).Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(errors.UserMessage(err))
		if result != nil && result.Emit != nil && result.Emit.Board.ViewURL != "" {
			printDetail("partial board: %s", result.Emit.Board.ViewURL)
		}
		return err
	}
	spinner.Stop()

	emitted := result.Emit
	printSuccess("Board %s", StyleTitle.Render(opts.Title))
	printKeyValue("Board", StyleLink.Render(emitted.Board.ViewURL))
	printKeyValue("Adapter", adapterName)
	printStats(result.Stats.ModuleCount, result.Stats.EdgeCount, result.Stats.DroppedCount)
	printDetail("%d nodes, %d notes, %d connectors in %s",
		emitted.Nodes, emitted.Annotations, emitted.Connectors, result.Stats.EmitTime.Round(time.Millisecond))
	for _, e := range emitted.Skipped {
		printWarning("skipped connector %s %s %s", e.From, iconArrow, e.To)
	}
	if emitted.Nodes == 0 {
		printNextStep("No modules found, check the source directory", appName+" graph --dir <path>")
	}

	printRaw("board_url=" + emitted.Board.ViewURL)
	if cfg.GitHubOutput != "" {
		if err := appendOutput(cfg.GitHubOutput, "board_url", emitted.Board.ViewURL); err != nil {
			return err
		}
		c.Logger.Debug("wrote step output", "path", cfg.GitHubOutput)
	}
	return nil
}

// progressHooks mirrors pipeline progress in the spinner message.
type progressHooks struct {
	observability.NoopPipelineHooks

	spinner *Spinner
	total   atomic.Int64
	done    atomic.Int64
}

func (h *progressHooks) OnAnalyzeComplete(_ context.Context, _ string, nodes, edges int, _ time.Duration, err error) {
	if err == nil {
		h.spinner.Update(fmt.Sprintf("Found %d modules, %d imports", nodes, edges))
	}
}

func (h *progressHooks) OnEmitStart(_ context.Context, commands int) {
	h.total.Store(int64(commands))
	h.done.Store(0)
	h.spinner.Update(fmt.Sprintf("Drawing 0/%d...", commands))
}

func (h *progressHooks) OnDispatch(_ context.Context, _ string, _ time.Duration, err error) {
	if err != nil {
		return
	}
	n := h.done.Add(1)
	h.spinner.Update(fmt.Sprintf("Drawing %d/%d...", n, h.total.Load()))
}
