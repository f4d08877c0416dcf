// Package cli implements the archboard command-line interface.
//
// archboard scans a directory of TypeScript/JavaScript modules, infers the
// import graph between them and draws it on a whiteboard. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - diagram: Analyze a source directory and draw the board
//   - graph: Analyze only; print a summary or write node-link JSON
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Settings come from archboard.toml (or --config), a .env file and the
// environment (MIRO_API_TOKEN, BOARD_NAME, GITHUB_URL, GITHUB_OUTPUT).
// Command flags override all of them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archboard/internal/config"
	"github.com/matzehuels/archboard/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "archboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath and envFile are bound to persistent root flags.
	configPath string
	envFile    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "archboard draws module dependency diagrams on a whiteboard",
		Long:          `archboard scans a directory of TypeScript/JavaScript source modules, infers their import relationships and renders the result as a diagram on a Miro board, or offline as Graphviz DOT/SVG or a Redis stream.`,
		Version:       buildinfo.ResolvedVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file with credentials")

	// Register all subcommands
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, .env and environment.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath, c.envFile)
	if err != nil {
		return nil, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}
