package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// completionScripts maps each supported shell to its cobra generator.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionScripts))
	for sh := range completionScripts {
		shells = append(shells, sh)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for stackbar and print it to stdout.

Besides commands and flags, the scripts complete --format, --orientation and
--input-format values and offer only .toml files for --config.`,
		Example: `  source <(stackbar completion bash)
  stackbar completion zsh > "${fpath[1]}/_stackbar"
  stackbar completion fish > ~/.config/fish/completions/stackbar.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

type completeFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeOneOf completes a flag that takes exactly one of values.
func completeOneOf(values ...string) completeFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes the last entry of a comma-separated format list,
// skipping formats already named.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	head := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head = toComplete[:i+1]
	}
	named := parseFormats(head)

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if !slices.Contains(named, f) {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerChartCompletions wires value completion for the chart flags.
func registerChartCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("orientation", completeOneOf("vertical", "horizontal"))
	_ = cmd.RegisterFlagCompletionFunc("input-format", completeOneOf("csv", "json"))
	_ = cmd.MarkFlagFilename("config", "toml")
}
