package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archboard/internal/config"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/pipeline"
)

// graphCommand creates the graph command, which analyzes without drawing.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		dir    string
		layout string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Analyze a source directory and print its module graph",
		Long: `Analyze a source directory and print its module graph.

Nothing is created on a board. With -o the graph is written as node-link
JSON, including imports that did not resolve to a scanned module.`,
		Example: `  archboard graph --dir src
  archboard graph -o graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Source.Dir = dir
			}
			if cmd.Flags().Changed("layout") {
				cfg.Layout.Engine = layout
			}
			return c.runGraph(cmd.Context(), cfg, output)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", pipeline.DefaultSourceDir, "source directory to scan")
	cmd.Flags().StringVar(&layout, "layout", pipeline.DefaultLayout, "layout engine: row, layered")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write node-link JSON to this file")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, cfg *config.Config, output string) error {
	opts := cfg.PipelineOptions()
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	a, err := pipeline.NewRunner(nil, c.Logger).Analyze(ctx, opts)
	if err != nil {
		return err
	}
	g := a.Graph
	prog.done(fmt.Sprintf("Analyzed %d modules", g.NodeCount()))

	if output != "" {
		if err := graph.WriteGraphFile(g, output); err != nil {
			return err
		}
		printSuccess("Graph written")
		printFile(output)
		return nil
	}

	printSuccess("Modules in %s", StyleValue.Render(opts.SourceDir))
	printStats(g.NodeCount(), g.EdgeCount(), len(g.Dropped()))
	for _, name := range g.Names() {
		deps := g.Children(name)
		if len(deps) == 0 {
			printKeyValue(name, StyleDim.Render("-"))
			continue
		}
		printKeyValue(name, strings.Join(deps, ", "))
	}
	for _, d := range g.Duplicates() {
		printWarning("duplicate module %s in %s", d.Name, d.FileName)
	}
	if g.NodeCount() > 0 {
		printNextStep("Draw it", appName+" diagram --dir "+opts.SourceDir)
	}
	return nil
}
