package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// rangeCommand creates the range command, which prints the value range a
// chart needs without rendering it.
func (c *CLI) rangeCommand() *cobra.Command {
	var (
		flags  chartFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "range [dataset]",
		Short: "Print the stacked value range of a dataset",
		Long: `Print the value range a grouped stacked bar chart of the dataset spans.

Within every category each group stacks its positive values upwards and its
negative values downwards. The range covers the extremes of all stacks and
always includes zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.build(cmd.Context(), &flags, args[0])
			if err != nil {
				return err
			}
			pass := result.Frame.Pass
			w := cmd.OutOrStdout()

			if asJSON {
				out := struct {
					Lower    *float64  `json:"lower"`
					Upper    *float64  `json:"upper"`
					Groups   int       `json:"groups"`
					Items    int       `json:"items"`
					BarWidth []float64 `json:"bar_widths"`
				}{Groups: result.Stats.Groups, Items: pass.Items, BarWidth: pass.BarWidth}
				if pass.HasRange {
					out.Lower, out.Upper = &pass.Range.Lower, &pass.Range.Upper
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if !pass.HasRange {
				printInfo(w, "Dataset has no values")
				return nil
			}
			printKeyValue(w, "lower", formatFloat(pass.Range.Lower))
			printKeyValue(w, "upper", formatFloat(pass.Range.Upper))
			printKeyValue(w, "groups", strconv.Itoa(result.Stats.Groups))
			printKeyValue(w, "items", strconv.Itoa(pass.Items))
			if len(pass.BarWidth) > 0 {
				printKeyValue(w, "bar width", fmt.Sprintf("%.1fpx", pass.BarWidth[0]))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
