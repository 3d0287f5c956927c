package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/promptship/promptship/internal/config"
	"github.com/promptship/promptship/internal/settings"
	"github.com/promptship/promptship/internal/terminal"
	"github.com/promptship/promptship/internal/update"
	"github.com/promptship/promptship/internal/workflow"
)

func runInteractive() error {
	terminal.Banner(Version)

	// Check for updates in the background (non-blocking).
	updateCh := make(chan *update.Result, 1)
	go func() {
		updateCh <- update.Check("promptship", "promptship", Version)
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	select {
	case res := <-updateCh:
		if res.NeedsUpdate() {
			terminal.Warning(fmt.Sprintf("Update available: v%s → v%s", res.Current, res.Latest))
			fmt.Println()
		}
	case <-time.After(3 * time.Second):
		// Don't block startup if the check is slow.
	}

	ctx := context.Background()
	for {
		switch ctrl.Status().Stage {
		case workflow.StageConfig:
			runConfigStage(ctx, ctrl)
		case workflow.StagePrompt:
			if done := runPromptStage(ctx, ctrl); done {
				return nil
			}
		case workflow.StageReview:
			if done := runReviewStage(ctx, ctrl); done {
				return nil
			}
		case workflow.StageSuccess:
			if done := runSuccessStage(ctrl); done {
				return nil
			}
		default:
			// Generating and Deploying never outlive their operation;
			// seeing them here means the loop is out of sync.
			return fmt.Errorf("unexpected stage %s", ctrl.Status().Stage)
		}
	}
}

// runConfigStage collects credentials and verifies them. The wizard stays
// here until verification succeeds.
func runConfigStage(ctx context.Context, ctrl *workflow.Controller) {
	current := ctrl.Status().Settings
	terminal.Header("Settings")
	fmt.Println("  Tokens are stored in your OS keychain. Press Enter to keep a saved value.")

	candidate := promptSettings(current)

	sp := terminal.NewSpinner("Verifying GitHub token...")
	sp.Start()
	err := ctrl.SaveSettings(ctx, candidate)
	sp.Stop()
	if err != nil {
		fmt.Println()
	}
}

// promptSettings reads a candidate settings record, keeping existing
// values on empty input.
func promptSettings(current settings.Settings) settings.Settings {
	candidate := current
	if v := terminal.ReadSecret("  Gemini API key:"); v != "" {
		candidate.GeminiKey = v
	}
	if v := terminal.ReadSecret("  GitHub token:"); v != "" {
		candidate.GitHubToken = v
	}
	if v := terminal.ReadSecret("  Vercel token (optional):"); v != "" {
		candidate.VercelToken = v
	}
	return candidate
}

// runPromptStage reads the project prompt. Returns true to exit.
func runPromptStage(ctx context.Context, ctrl *workflow.Controller) bool {
	fmt.Println()
	prompt, ok := terminal.ReadLine("What should we build? (/settings, /quit)")
	if !ok {
		return true
	}

	switch prompt {
	case "/quit", "/exit":
		return true
	case "/settings":
		ctrl.OpenSettings()
		return false
	}

	sp := terminal.NewSpinner("Generating project...")
	sp.Start()
	err := ctrl.Generate(ctx, prompt)
	sp.Stop()
	_ = err // already narrated via the log
	return false
}

// runReviewStage shows the generated files and asks what to do next.
func runReviewStage(ctx context.Context, ctrl *workflow.Controller) bool {
	st := ctrl.Status()
	project := st.Project
	if project == nil {
		ctrl.NewPrompt()
		return false
	}

	terminal.Header(fmt.Sprintf("%s - %s", project.Name, project.Description))
	for _, f := range project.Files {
		terminal.Detail("file", f.Path)
	}
	fmt.Println()

	choice, ok := terminal.ReadLine("Deploy to GitHub? (yes / new prompt / quit)")
	if !ok {
		return true
	}
	switch choice {
	case "", "y", "yes", "deploy":
		if st.Settings.GitHubLogin == "" {
			terminal.Warning("Verify your GitHub token first")
			ctrl.OpenSettings()
			return false
		}
		_ = ctrl.Deploy(ctx) // narrated via the log
		return false
	case "new", "new prompt", "n":
		ctrl.NewPrompt()
		return false
	case "quit", "exit":
		return true
	default:
		return false
	}
}

// runSuccessStage prints the terminal links and offers a fresh start.
func runSuccessStage(ctrl *workflow.Controller) bool {
	st := ctrl.Status()
	fmt.Println()
	terminal.Link("Repository", st.RepoURL)
	if st.DeploymentURL != "" {
		terminal.Link("Deployment", st.DeploymentURL)
	}
	fmt.Println()

	if terminal.Confirm("Build another project?") {
		ctrl.NewPrompt()
		return false
	}
	return true
}
