// Package cli implements the ecolayout command-line interface.
//
// This package provides commands for laying out co-abundance networks,
// rendering them, inspecting their modules, previewing layouts in the
// terminal, and serving the pipeline over HTTP. The CLI is built using cobra
// and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions and write a layout.json file
//   - render: Lay out and draw a network as SVG, DOT, PNG or JSON
//   - visualize: Draw a network from a previously computed layout
//   - modules: Summarize (and optionally detect) network modules
//   - preview: Explore layouts interactively in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the local layout cache
//
// # Configuration
//
// Settings are read from a TOML file (--config, or config.toml in the user
// config directory). Flags given on the command line take precedence.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/buildinfo"
	"github.com/matzehuels/ecolayout/pkg/cache"
	"github.com/matzehuels/ecolayout/pkg/config"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// appName names the config and cache directories.
const appName = "ecolayout"

// Log levels accepted by [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the logger and loaded configuration shared by every command.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	levelSet   bool
}

// New returns a CLI logging to w at level, with default settings until a
// command loads the config file.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel changes the log level. An explicit level outranks the
// [log] level setting of the config file.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.levelSet = true
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ecolayout lays out and draws co-abundance networks",
		Long: heredoc.Doc(`
			Ecolayout lays out co-abundance ecosystem networks (features as nodes,
			signed correlations as edges) and draws them with module, taxonomy or
			enrichment coloring.
		`),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <user config dir>/ecolayout/config.toml)")

	root.AddCommand(
		c.layoutCommand(),
		c.renderCommand(),
		c.visualizeCommand(),
		c.modulesCommand(),
		c.previewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// loadConfig reads the config file. An explicit --config must exist; the
// default location is optional.
func (c *CLI) loadConfig() error {
	path := c.configPath
	load := config.Load
	if path == "" {
		var err error
		if path, err = config.DefaultPath(appName); err != nil {
			return nil
		}
		load = config.LoadOptional
	}

	cfg, err := load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	if lvl, ok := cfg.LogLevel(); ok && !c.levelSet {
		c.Logger.SetLevel(lvl)
	}
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// newRunner returns a runner over the local file cache, or over a null
// cache when caching is off. An unresolvable cache directory disables
// caching instead of failing the command.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store := cache.NewNullCache()
	if !noCache && !c.Config.Cache.Disabled {
		if dir, err := c.cacheDir(); err != nil {
			c.Logger.Debug("cache disabled", "error", err)
		} else {
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return nil, err
			}
			store = fc
		}
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}
