package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "promptship",
	Short:   "Generate a web project from a prompt and ship it",
	Long:    "Promptship turns a natural-language prompt into a small web project, pushes it to a new GitHub repository, and optionally registers it with Vercel.",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// modeFlag holds the --mode flag value.
var modeFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "site", "generation mode (site or app)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(mcpCmd)
}
