package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check chart configuration files",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configCheckCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Print the default chart configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().WriteTOML(cmd.OutOrStdout())
		},
	}
}

func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a chart configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := config.Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "%s is valid", args[0])
			printKeyValue(w, "groups", strconv.Itoa(chart.GroupMap().Count()))
			printKeyValue(w, "size", formatFloat(chart.Width)+"x"+formatFloat(chart.Height))
			printKeyValue(w, "hash", chart.Hash()[:12])
			return nil
		},
	}
}
