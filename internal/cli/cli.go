// Package cli implements the latt command-line interface.
//
// This package provides commands for decoding word lattices, counting
// paths, querying time-indexed content, exporting visualizations, and
// running the analysis API server. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - decode: Find the best-scoring word sequence through a lattice
//   - count: Count the exact number of distinct paths
//   - info: Show lattice statistics
//   - query: Time-indexed lookups (words-at, hits)
//   - export: Emit DOT or SVG renderings
//   - batch: Analyze many lattice files at once
//   - serve: Run the HTTP analysis API
//   - archive: Push/fetch lattices to the archive store
//   - cache: Manage the analysis result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/buildinfo"
	"github.com/latt-dev/latt/pkg/cache"
	"github.com/latt-dev/latt/pkg/config"
	"github.com/latt-dev/latt/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "latt"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// configPath is the --config flag value; empty means the default
	// location, loaded lazily in PersistentPreRunE.
	configPath string
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
		Use:          "latt",
		Short:        "latt analyzes speech recognition word lattices",
		Long:         `latt is a CLI tool for analyzing word lattices: weighted graphs of alternative transcriptions produced by a speech recognizer. It decodes the best hypothesis, counts paths exactly, and answers time-indexed queries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadIfExists(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/latt/config.toml)")

	// Register all subcommands
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: the configured one when set,
// otherwise the XDG standard location (~/.cache/latt/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
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
// Options Helpers
// =============================================================================

// analysisOptions builds pipeline options for a lattice file using the
// configured defaults.
func (c *CLI) analysisOptions(path string, lmScale float64) pipeline.Options {
	return pipeline.Options{
		Path:         path,
		LMScale:      lmScale,
		SilenceToken: c.Config.SilenceToken,
		Logger:       c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	return strings.Split(s, ",")
}
