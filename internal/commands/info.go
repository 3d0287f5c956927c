package commands

import (
	"github.com/promptship/promptship/internal/config"
	"github.com/promptship/promptship/internal/settings"
	"github.com/promptship/promptship/internal/terminal"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show stored settings and defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := settings.NewStore(cfg.Root).Load()
		if err != nil {
			return err
		}

		terminal.Header("Credentials")
		terminal.Detail("Gemini API key", configured(s.GeminiKey != ""))
		terminal.Detail("GitHub token", configured(s.GitHubToken != ""))
		terminal.Detail("Vercel token", configured(s.VercelToken != ""))
		if s.GitHubLogin != "" {
			terminal.Detail("GitHub account", s.GitHubLogin)
		}

		terminal.Header("Defaults")
		terminal.Detail("State directory", cfg.Root)
		terminal.Detail("Model", cfg.App.Model)
		terminal.Detail("Hosting domain", cfg.App.HostingDomain)
		terminal.Detail("Commit message", cfg.App.CommitMessage)
		return nil
	},
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not set"
}
