// Package pipeline provides the end-to-end diagram pipeline for archboard.
//
// This package wires the stages together so the CLI (and anything else that
// embeds archboard) runs them the same way:
//
//  1. Analyze: scan the source directory, extract imports and exports,
//     assemble the dependency graph and place its nodes
//  2. Plan: translate graph and positions into drawing commands
//  3. Emit: replay the commands against a whiteboard adapter
//
// Analysis never touches the adapter, so a missing source directory fails
// before anything is created remotely.
//
// # Usage
//
//	runner := pipeline.NewRunner(adapter, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SourceDir: "src",
//	    Title:     "Architecture Diagram",
//	    Link:      os.Getenv("GITHUB_URL"),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Emit.Board.ViewURL)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archboard/pkg/diagram"
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
	"github.com/matzehuels/archboard/pkg/layout"
	"github.com/matzehuels/archboard/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTitle names the board when no title is configured.
	DefaultTitle = diagram.DefaultTitle

	// DefaultSourceDir is scanned when no directory is configured.
	DefaultSourceDir = source.DefaultDir

	// DefaultLayout is the layout engine used when none is configured.
	DefaultLayout = layout.EngineRow

	// DefaultSpacing is the horizontal distance between module centers.
	DefaultSpacing = layout.DefaultSpacing
)

// ValidLayouts is the set of supported layout engines.
var ValidLayouts = map[string]bool{
	layout.EngineRow:     true,
	layout.EngineLayered: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Analysis options
	SourceDir string  `json:"source_dir,omitempty"`
	Layout    string  `json:"layout,omitempty"`
	Spacing   float64 `json:"spacing,omitempty"`

	// Board options
	Title     string `json:"title,omitempty"`
	Link      string `json:"link,omitempty"`
	LinkLabel string `json:"link_label,omitempty"`

	// Palette overrides default module colors by exact module name.
	Palette map[string]string `json:"palette,omitempty"`

	// DefaultColor fills modules the palette does not name.
	DefaultColor string `json:"default_color,omitempty"`

	// Emission options
	Concurrency int `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Analysis is the output of the analysis stages.
type Analysis struct {
	Records   []source.ModuleRecord
	Graph     *graph.Graph
	Positions layout.Positions
}

// Result contains the outputs of a full pipeline run.
type Result struct {
	Analysis *Analysis
	Plan     []diagram.Command
	Emit     *diagram.Result
	Stats    Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount  int
	EdgeCount    int
	DroppedCount int
	CommandCount int
	AnalyzeTime  time.Duration
	EmitTime     time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateLayout checks that a layout engine name is valid.
func ValidateLayout(name string) error {
	if !ValidLayouts[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout: %q (must be one of: row, layered)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAnalyze(); err != nil {
		return err
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	o.validated = true
	return nil
}

// ValidateForAnalyze checks fields and applies defaults for the analysis stages.
func (o *Options) ValidateForAnalyze() error {
	if o.SourceDir == "" {
		o.SourceDir = DefaultSourceDir
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spacing must be positive, got %g", o.Spacing)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateLayout(o.Layout)
}

// ValidateForPlan checks board and palette fields and applies their defaults.
func (o *Options) ValidateForPlan() error {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.LinkLabel == "" {
		o.LinkLabel = diagram.DefaultLinkLabel
	}
	if err := errors.ValidateBoardTitle(o.Title); err != nil {
		return err
	}
	if err := errors.ValidateLink(o.Link); err != nil {
		return err
	}
	if o.DefaultColor != "" {
		if err := errors.ValidateColor(o.DefaultColor); err != nil {
			return err
		}
	}
	for name, c := range o.Palette {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette entry %q", name)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ColorPalette returns the default palette with the configured overrides applied.
func (o *Options) ColorPalette() diagram.Palette {
	p := diagram.DefaultPalette().With(o.Palette)
	if o.DefaultColor != "" {
		p.Default = o.DefaultColor
	}
	return p
}

// PlanOptions converts pipeline options to diagram planning options.
func (o *Options) PlanOptions() diagram.Options {
	return diagram.Options{
		Title:     o.Title,
		Link:      o.Link,
		LinkLabel: o.LinkLabel,
		Classify:  o.ColorPalette().Classify,
	}
}
