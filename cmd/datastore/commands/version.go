package commands

import (
	"github.com/satishbabariya/datastore/internal/ui"
	"github.com/satishbabariya/datastore/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading so a broken config file does not hide the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if output != outputTable {
				return writeOutput(output, info)
			}
			ui.PrintField("Version", info.Version)
			ui.PrintField("Commit", info.GitCommit)
			ui.PrintField("Built", info.BuildDate)
			ui.PrintField("Go", info.GoVersion)
			ui.PrintField("Platform", info.Platform)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}
