package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/source"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      chartFlags
		formatsStr string
		output     string
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset as a grouped stacked bar chart",
		Long: `Render a dataset as a grouped stacked bar chart.

The dataset may be a CSV or JSON file, "-" for stdin, an http(s) URL, or a
MongoDB collection given as mongodb://host/database/collection. Remote
datasets and rendered charts are cached locally.

Series are assigned to groups by the chart configuration (-c). Without one,
every series stacks in a single group.`,
		Example: `  stackbar render sales.csv
  stackbar render sales.csv -c chart.toml -f svg,png -o out/sales
  curl -s https://example.com/sales.json | stackbar render - -f pdf -o sales.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			opts := flags.options(args[0])
			opts.Formats = formats
			opts.Scale = scale
			return c.runRender(cmd, opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	cmd.Flags().Float64Var(&scale, "scale", 0, "PNG pixel scale (default 2)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	w := cmd.OutOrStdout()
	if output == "-" {
		return writeStdout(w, result.Artifacts, opts.Formats)
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output)
	if err != nil {
		return err
	}

	printSuccess(w, "Rendered %s", chartName(opts.Source))
	printStats(w, result.Stats.Rows, result.Stats.Columns, result.Stats.Groups, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(w, p)
	}
	return nil
}

// basePath derives the output path without extension. An output with a
// known format extension loses it; without an output, file inputs keep
// their name and other sources are written as "chart".
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if source.KindOf(input) != source.KindFile {
		return "chart"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output is written to exactly that path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	if len(formats) == 1 && output != "" {
		paths = []string{output}
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths = append(paths, base+"."+f)
		}
	}

	for i, f := range formats {
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		if err := os.WriteFile(paths[i], artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return paths, nil
}

func writeStdout(w io.Writer, artifacts map[string][]byte, formats []string) error {
	if len(formats) != 1 {
		return fmt.Errorf("stdout output needs exactly one format, got %d", len(formats))
	}
	_, err := w.Write(artifacts[formats[0]])
	return err
}

func chartName(src string) string {
	if src == "-" {
		return "stdin"
	}
	return src
}
