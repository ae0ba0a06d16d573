package cli

import (
	"errors"
	"fmt"

	"github.com/RevCBH/roomreport/internal/identity"
	"github.com/spf13/cobra"
)

// ErrUnknownLocation is returned by resolve when the location tag has no
// configured destination
var ErrUnknownLocation = errors.New("location not configured")

// NewResolveCmd creates the resolve command
func NewResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <address>",
		Short: "Show where reports from a device address would be sent",
		Long: `Resolve parses a device contact address of the form
<location>-<room>@<domain> and looks the location up in the configured
directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			id, err := identity.Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "location: %s\n", id.LocationTag)
			fmt.Fprintf(out, "room:     %s\n", id.RoomLabel)

			dest, ok := cfg.Directory().Lookup(id.LocationTag)
			if !ok {
				return fmt.Errorf("%s: %w", id.LocationTag, ErrUnknownLocation)
			}
			fmt.Fprintf(out, "space:    %s\n", dest)
			return nil
		},
	}
}
