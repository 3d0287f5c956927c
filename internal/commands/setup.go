package commands

import (
	"context"

	"github.com/promptship/promptship/internal/config"
	"github.com/promptship/promptship/internal/terminal"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store and verify API credentials",
	Long:  "Collect the Gemini, GitHub and Vercel credentials, verify the GitHub token, and store everything in the OS keychain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctrl, err := newController(cfg)
		if err != nil {
			return err
		}

		terminal.Header("Promptship Setup")
		candidate := promptSettings(ctrl.Status().Settings)

		sp := terminal.NewSpinner("Verifying GitHub token...")
		sp.Start()
		err = ctrl.SaveSettings(context.Background(), candidate)
		sp.Stop()
		return err
	},
}
