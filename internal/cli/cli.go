// Package cli implements the graphbash command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbash/pkg/buildinfo"
	"github.com/matzehuels/graphbash/pkg/cache"
	"github.com/matzehuels/graphbash/pkg/config"
	"github.com/matzehuels/graphbash/pkg/observability"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphbash"
)

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

	configPath string
	cfg        *config.Config
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
		Use:          appName,
		Short:        "graphbash finds input codes through the panel graph of a RAM dump",
		Long:         `graphbash expands the panel behaviour table of a RAM dump into a graph of directional moves and finds the cheapest input code that visits a set of target panels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphbash/config.toml)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.targetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and, at debug level, installs logging
// hooks for pipeline and cache events.
func (c *CLI) setup(ctx context.Context) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
	return nil
}

// settings returns the loaded configuration, falling back to the defaults
// when a command runs without the root pre-run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.settings()
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("graph cache", "backend", cfg.Cache.Backend, "disabled", noCache)
	return pipeline.NewRunner(store, cacheKeyer(cfg.Cache), c.Logger), nil
}

// cacheKeyer applies cache.prefix to keys. The Redis backend prefixes keys
// itself so that Clear can scan for them, so it gets the default keyer.
func cacheKeyer(cfg config.CacheConfig) cache.Keyer {
	if cfg.Prefix == "" || cfg.Backend == config.BackendRedis {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Prefix)
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphbash/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Graph Flags
// =============================================================================

// graphFlags are the graph selection flags shared by route, generate and serve.
type graphFlags struct {
	file     string
	dump     string
	start    int32
	depth    int
	maxNodes int
	refresh  bool
	noCache  bool
}

func (f *graphFlags) register(cmd *cobra.Command, withFile bool) {
	if withFile {
		cmd.Flags().StringVarP(&f.file, "graph", "g", "", "generated graph file (JSON)")
	}
	cmd.Flags().StringVar(&f.dump, "dump", "", "RAM dump to generate the graph from")
	cmd.Flags().Int32Var(&f.start, "start", 0, "panel to start generation from")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "generation depth (default from config)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "abort generation beyond this many panels")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "regenerate even if the graph is cached")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the graph cache")
}

// options merges the flags over the configured graph section.
func (f *graphFlags) options(cfg *config.Config) pipeline.GraphOptions {
	opts := pipeline.GraphOptions{
		File:     cfg.Graph.File,
		Dump:     cfg.Graph.Dump,
		Start:    f.start,
		MaxDepth: cfg.Graph.Depth,
		MaxNodes: cfg.Graph.MaxNodes,
		Refresh:  f.refresh,
		TTL:      cfg.Cache.TTL.Duration,
	}
	if f.dump != "" {
		opts.Dump = f.dump
		opts.File = ""
	}
	if f.file != "" {
		opts.File = f.file
	}
	if f.depth > 0 {
		opts.MaxDepth = f.depth
	}
	if f.maxNodes > 0 {
		opts.MaxNodes = f.maxNodes
	}
	return opts
}

// loadGraph runs the load stage with a spinner.
func (c *CLI) loadGraph(ctx context.Context, runner *pipeline.Runner, opts pipeline.GraphOptions) (*pipeline.LoadedGraph, error) {
	msg := "Generating panel graph..."
	if opts.File != "" {
		msg = "Reading panel graph..."
	}
	loaded, err := spin(ctx, msg, func() (*pipeline.LoadedGraph, error) {
		return runner.LoadGraph(ctx, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return loaded, nil
}
