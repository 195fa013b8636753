// Package cli implements the stackbar command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/buildinfo"
	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/pipeline"
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

	// CacheDir overrides the cache location. Empty means [cache.DefaultDir].
	CacheDir string
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
		Use:          "stackbar",
		Short:        "Stackbar renders grouped stacked bar charts",
		Long:         `Stackbar renders category datasets as grouped stacked bar charts: every category gets one bar per series group, and the series of a group stack on top of each other.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.rangeCommand())
	root.AddCommand(c.groupsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags are the flags shared by every command that builds a chart.
type chartFlags struct {
	config      string
	inputFormat string
	title       string
	width       float64
	height      float64
	orientation string
	refresh     bool
	noCache     bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "chart configuration (TOML)")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "dataset format: csv, json (default: by extension)")
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().Float64Var(&f.width, "width", 0, "frame width (overrides config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "frame height (overrides config)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "vertical or horizontal (overrides config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached datasets and artifacts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	registerChartCompletions(cmd)
}

func (f *chartFlags) options(src string) pipeline.Options {
	return pipeline.Options{
		Source:      src,
		InputFormat: f.inputFormat,
		ConfigPath:  f.config,
		Title:       f.title,
		Width:       f.width,
		Height:      f.height,
		Orientation: f.orientation,
		Refresh:     f.refresh,
	}
}

// build loads and lays out the chart for src without rendering.
func (c *CLI) build(ctx context.Context, f *chartFlags, src string) (*pipeline.Result, error) {
	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts := f.options(src)
	opts.Logger = c.Logger
	return runner.Build(ctx, opts)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
