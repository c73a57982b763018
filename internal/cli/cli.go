package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaview/internal/config"
	"github.com/matzehuels/schemaview/pkg/buildinfo"
	"github.com/matzehuels/schemaview/pkg/cache"
	"github.com/matzehuels/schemaview/pkg/pipeline"
	"github.com/matzehuels/schemaview/pkg/view"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "schemaview"

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

	// Config is resolved before any subcommand runs.
	Config config.Config

	ui         printer
	configPath string
	envFiles   []string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Schemaview draws relational schemas as routed diagrams",
		Long: `Schemaview turns a schema snapshot (tables, columns and foreign keys) into a
laid-out diagram: table boxes placed by a layered layout, relationships routed
as orthogonal paths with rounded corners, and a camera fitted to the result.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.ui = printer{w: cmd.OutOrStdout()}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default: ./"+config.DefaultFile+" when present)")
	flags.StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load (default: .env)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration and applies its [log] section.
// --verbose wins over the configured level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath, c.envFiles...)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if cfg.Log.Format == config.FormatJSON {
		c.Logger.SetFormatter(log.JSONFormatter)
	}
	c.Logger.Debug("config loaded", "engine", cfg.Layout.Engine, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner on the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Config.Cache.Keyer(), c.Logger), nil
}

// openCache opens the configured backend. An unreachable backend degrades
// to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := c.Config.Cache.OpenCache(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "error", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one or the
// user cache directory (~/.cache/schemaview/layouts on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// viewOptions returns the configured engine options with an optional
// --engine override applied.
func (c *CLI) viewOptions(engine string) (view.Options, error) {
	cfg := c.Config
	if engine != "" {
		cfg.Layout.Engine = engine
		if err := cfg.Validate(); err != nil {
			return view.Options{}, err
		}
	}
	return cfg.View(), nil
}
