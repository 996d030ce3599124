// Package cli implements the resmon commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootOpts runOptions

var rootCmd = &cobra.Command{
	Use:   "resmon",
	Short: "Show CPU and memory usage in the system tray",
	Long: `resmon keeps CPU and memory usage visible in the system tray.
Run it from a terminal to open the settings panel, or with --headless to keep
only the tray icon.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), rootOpts)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&rootOpts.configPath, "config", "", "config file (default ~/.resmon/config.yaml)")
	flags.BoolVar(&rootOpts.minimized, "minimized", false, "start with the settings panel hidden")
	flags.BoolVar(&rootOpts.headless, "headless", false, "run without the settings panel")
	flags.CountVarP(&rootOpts.verbose, "verbose", "v", "increase log verbosity")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(versionCmd)
}
