package cli

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := app.versionInfo
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "roomreport version %s\n", cmp.Or(info.Version, "dev"))
			fmt.Fprintf(out, "commit: %s\n", cmp.Or(info.Commit, "unknown"))
			fmt.Fprintf(out, "built: %s\n", cmp.Or(info.Date, "unknown"))
			return nil
		},
	}
}
