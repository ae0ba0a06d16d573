package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(app))
	return cmd
}

func newConfigValidateCmd(app *App) *cobra.Command {
	var device bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if device {
				if err := cfg.ValidateDevice(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "configuration OK")
			fmt.Fprintf(out, "  panel:      %s\n", cfg.Panel.ID)
			fmt.Fprintf(out, "  policy:     %s\n", cfg.ActivationPolicy)
			fmt.Fprintf(out, "  delivery:   %s\n", strings.Join(cfg.Delivery.Backends, ", "))
			fmt.Fprintf(out, "  locations:  %s\n", strings.Join(cfg.Directory().Tags(), ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&device, "device", false, "Also require the device connection settings")
	return cmd
}
