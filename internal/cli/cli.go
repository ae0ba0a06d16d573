package cli

import (
	"github.com/RevCBH/roomreport/internal/config"
	"github.com/spf13/cobra"
)

// versionInfo holds build metadata set via SetVersion
type versionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Persistent flags
	configPath string
	verbose    bool

	// Version information
	versionInfo versionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = versionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "roomreport",
		Short: "Room issue reporting for RoomOS devices",
		Long: `roomreport drives a RoomOS video device through a short issue report:
a panel button opens a category prompt, a description and a name, and the
assembled report is posted to the Webex space for the device's location.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Config file (default "+config.DefaultConfigFile+" in the working directory)")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output (log level debug)")

	a.rootCmd.AddCommand(
		NewRunCmd(a),
		NewSimulateCmd(a),
		NewResolveCmd(a),
		NewConfigCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig reads the configuration named by --config, applying the
// command's overrides and --verbose before validation.
func (a *App) loadConfig(overrides ...config.Override) (*config.Config, error) {
	if a.verbose {
		overrides = append(overrides, func(c *config.Config) { c.LogLevel = "debug" })
	}
	return config.LoadConfig(a.configPath, overrides...)
}
