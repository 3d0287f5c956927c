package commands

import (
	"github.com/promptship/promptship/internal/config"
	"github.com/promptship/promptship/internal/generation"
	"github.com/promptship/promptship/internal/provision/github"
	"github.com/promptship/promptship/internal/provision/vercel"
	"github.com/promptship/promptship/internal/settings"
	"github.com/promptship/promptship/internal/terminal"
	"github.com/promptship/promptship/internal/workflow"
)

// newController wires the real clients into a workflow controller whose
// log entries render as terminal lines.
func newController(cfg *config.Config) (*workflow.Controller, error) {
	mode := generation.ModeSite
	if modeFlag == string(generation.ModeApp) {
		mode = generation.ModeApp
	}

	return workflow.NewController(workflow.Options{
		Generator:     generation.NewClient(cfg.App.GenerationBaseURL, cfg.App.Model),
		Provisioner:   github.NewClient(cfg.App.GitHubBaseURL),
		Hoster:        vercel.NewClient(cfg.App.VercelBaseURL),
		Store:         settings.NewStore(cfg.Root),
		Mode:          mode,
		HostingDomain: cfg.App.HostingDomain,
		CommitMessage: cfg.App.CommitMessage,
		LogSink:       printLogEntry,
	})
}

// printLogEntry renders a workflow log entry as a colored terminal line.
func printLogEntry(e workflow.LogEntry) {
	switch e.Level {
	case workflow.LevelSuccess:
		terminal.Success(e.Message)
	case workflow.LevelError:
		terminal.Error(e.Message)
	case workflow.LevelWarning:
		terminal.Warning(e.Message)
	default:
		terminal.Info(e.Message)
	}
}
