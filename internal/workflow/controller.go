// Package workflow owns the wizard session: the current stage, the log,
// and the accumulated results (settings, generated project, repository and
// deployment URLs). All mutation goes through one Controller instance;
// every top-level operation is guarded by a single in-flight flag.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/promptship/promptship/internal/generation"
	"github.com/promptship/promptship/internal/provision/github"
	"github.com/promptship/promptship/internal/provision/vercel"
	"github.com/promptship/promptship/internal/settings"
)

// ErrBusy is returned when an operation is triggered while another is
// still in flight. Operations are never queued.
var ErrBusy = fmt.Errorf("another operation is in progress")

// Generator produces a project from a prompt.
type Generator interface {
	GenerateProject(ctx context.Context, prompt string, mode generation.Mode, apiKey string) (*generation.Project, error)
}

// Provisioner verifies a credential, creates a repository and uploads files.
type Provisioner interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	CreateRepository(ctx context.Context, token, login, name, description string) (*github.Repository, error)
	PushFiles(ctx context.Context, token, login, repo, commitMessage string, files []github.File, onProgress github.ProgressFunc) error
}

// Hoster registers a repository with the hosting provider.
type Hoster interface {
	RegisterProject(ctx context.Context, token, name, repoRef string) (*vercel.Project, error)
}

// SettingsStore persists the credential record.
type SettingsStore interface {
	Load() (settings.Settings, error)
	Save(settings.Settings) error
}

// Options configures a Controller.
type Options struct {
	Generator   Generator
	Provisioner Provisioner
	Hoster      Hoster
	Store       SettingsStore

	// Mode is the generation flavor requested from the model.
	Mode generation.Mode
	// HostingDomain approximates deployment URLs (https://<name>.<domain>).
	HostingDomain string
	// CommitMessage is used for every pushed file.
	CommitMessage string
	// LogSink receives each appended log entry, if set.
	LogSink func(LogEntry)
}

// provisionStep tracks where the deploy sequence is, for status display.
type provisionStep string

const (
	stepNotStarted      provisionStep = "not started"
	stepRepoCreating    provisionStep = "creating repository"
	stepFilesPushing    provisionStep = "pushing files"
	stepHostRegistering provisionStep = "registering hosting"
	stepDone            provisionStep = "done"
	stepFailed          provisionStep = "failed"
)

// Controller drives the wizard. It is safe for use from multiple
// goroutines, but only one operation may be in flight at a time.
type Controller struct {
	generator   Generator
	provisioner Provisioner
	hoster      Hoster
	store       SettingsStore

	mode          generation.Mode
	hostingDomain string
	commitMessage string

	log *Log

	mu        sync.Mutex
	busy      bool
	stage     Stage
	settings  settings.Settings
	project   *generation.Project
	repoURL   string
	deployURL string
	step      provisionStep
}

// NewController creates a controller in the Config stage and loads any
// persisted settings. When both required credentials are already present
// the wizard starts at the Prompt stage.
func NewController(opts Options) (*Controller, error) {
	c := &Controller{
		generator:     opts.Generator,
		provisioner:   opts.Provisioner,
		hoster:        opts.Hoster,
		store:         opts.Store,
		mode:          opts.Mode,
		hostingDomain: opts.HostingDomain,
		commitMessage: opts.CommitMessage,
		log:           NewLog(opts.LogSink),
		stage:         StageConfig,
		step:          stepNotStarted,
	}
	if c.mode == "" {
		c.mode = generation.ModeSite
	}

	s, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	c.settings = s
	if s.HasCredentials() && s.GitHubLogin != "" {
		c.stage = StagePrompt
	}
	return c, nil
}

// Status is a point-in-time snapshot of the session.
type Status struct {
	Stage         Stage
	Busy          bool
	Settings      settings.Settings
	Project       *generation.Project
	RepoURL       string
	DeploymentURL string
	ProvisionStep string
}

// Status returns a snapshot of the current session state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Stage:         c.stage,
		Busy:          c.busy,
		Settings:      c.settings,
		Project:       c.project,
		RepoURL:       c.repoURL,
		DeploymentURL: c.deployURL,
		ProvisionStep: string(c.step),
	}
}

// Log returns the session log.
func (c *Controller) Log() *Log {
	return c.log
}

// begin claims the in-flight slot. It fails with ErrBusy instead of
// queueing, so re-entrant triggers are rejected outright.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) setStage(s Stage) {
	c.mu.Lock()
	c.stage = s
	c.mu.Unlock()
}

// SaveSettings verifies the GitHub token, merges the resolved login into
// the candidate record, persists it wholesale, and advances to the Prompt
// stage. On failure the stage is left unchanged.
func (c *Controller) SaveSettings(ctx context.Context, candidate settings.Settings) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	login, err := c.provisioner.VerifyToken(ctx, candidate.GitHubToken)
	if err != nil {
		c.log.Append(LevelError, fmt.Sprintf("Credential check failed: %v", err))
		return err
	}
	candidate.GitHubLogin = login

	if err := c.store.Save(candidate); err != nil {
		c.log.Append(LevelError, fmt.Sprintf("Could not save settings: %v", err))
		return err
	}

	c.mu.Lock()
	c.settings = candidate
	c.stage = StagePrompt
	c.mu.Unlock()

	c.log.Append(LevelSuccess, fmt.Sprintf("GitHub token verified for %s", login))
	return nil
}

// Generate asks the model for a project. Empty or whitespace-only prompts
// are a no-op: stage and project state are left untouched. On failure the
// stage reverts to Prompt and no partial project is stored.
func (c *Controller) Generate(ctx context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return nil
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.mu.Lock()
	apiKey := c.settings.GeminiKey
	c.stage = StageGenerating
	c.mu.Unlock()

	project, err := c.generator.GenerateProject(ctx, prompt, c.mode, apiKey)
	if err != nil {
		c.log.Append(LevelError, fmt.Sprintf("Generation failed: %v", err))
		c.setStage(StagePrompt)
		return err
	}

	c.mu.Lock()
	// A new generation discards any previous project and its URLs.
	c.project = project
	c.repoURL = ""
	c.deployURL = ""
	c.stage = StageReview
	c.mu.Unlock()

	c.log.Append(LevelSuccess, fmt.Sprintf("Generated project %q", project.Name))
	c.log.Append(LevelInfo, fmt.Sprintf("%d files ready for review", len(project.Files)))
	return nil
}

// Deploy provisions the active project: repository creation, sequential
// file upload, then hosting registration when a Vercel token is present.
// Any failure reverts the stage to Review; log entries and partial remote
// state (created repository, already pushed files) are left as-is, so a
// retry re-runs the whole sequence against whatever already exists.
func (c *Controller) Deploy(ctx context.Context) error {
	c.mu.Lock()
	project := c.project
	s := c.settings
	c.mu.Unlock()

	if project == nil || s.GitHubLogin == "" {
		return nil
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.mu.Lock()
	c.stage = StageDeploying
	c.step = stepRepoCreating
	c.mu.Unlock()

	fail := func(err error) error {
		c.log.Append(LevelError, fmt.Sprintf("Deployment failed: %v", err))
		c.mu.Lock()
		c.stage = StageReview
		c.step = stepFailed
		c.mu.Unlock()
		return err
	}

	c.log.Append(LevelInfo, fmt.Sprintf("Creating GitHub repository %q...", project.Name))
	repo, err := c.provisioner.CreateRepository(ctx, s.GitHubToken, s.GitHubLogin, project.Name, project.Description)
	if err != nil {
		return fail(err)
	}
	c.log.Append(LevelSuccess, fmt.Sprintf("Repository ready: %s", repo.URL))

	c.mu.Lock()
	c.step = stepFilesPushing
	c.mu.Unlock()

	files := make([]github.File, len(project.Files))
	for i, f := range project.Files {
		files[i] = github.File{Path: f.Path, Content: f.Content}
	}
	c.log.Append(LevelInfo, fmt.Sprintf("Pushing %d files...", len(files)))
	err = c.provisioner.PushFiles(ctx, s.GitHubToken, s.GitHubLogin, repo.Name, c.commitMessage, files, func(i int, path string) {
		c.log.Append(LevelInfo, fmt.Sprintf("Uploading %s (%d/%d)", path, i+1, len(files)))
	})
	if err != nil {
		return fail(err)
	}
	c.log.Append(LevelSuccess, "All files pushed")

	deployURL := ""
	if s.VercelToken != "" {
		c.mu.Lock()
		c.step = stepHostRegistering
		c.mu.Unlock()

		c.log.Append(LevelInfo, "Registering Vercel project...")
		repoRef := s.GitHubLogin + "/" + repo.Name
		if _, err := c.hoster.RegisterProject(ctx, s.VercelToken, project.Name, repoRef); err != nil {
			return fail(err)
		}
		// The public URL is approximated from the project name rather than
		// read from the response; it may be wrong even when registration
		// succeeded.
		deployURL = fmt.Sprintf("https://%s.%s", project.Name, c.hostingDomain)
		c.log.Append(LevelSuccess, fmt.Sprintf("Vercel project registered: %s", deployURL))
	} else {
		c.log.Append(LevelWarning, "Skipping Vercel deployment (no token configured)")
	}

	c.mu.Lock()
	c.repoURL = repo.URL
	c.deployURL = deployURL
	c.stage = StageSuccess
	c.step = stepDone
	c.mu.Unlock()

	c.log.Append(LevelSuccess, "Deployment complete")
	return nil
}

// NewPrompt returns to the Prompt stage, discarding the active project and
// any deployment results. No-op while an operation is in flight.
func (c *Controller) NewPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return
	}
	c.project = nil
	c.repoURL = ""
	c.deployURL = ""
	c.step = stepNotStarted
	c.stage = StagePrompt
}

// OpenSettings returns to the Config stage. Available from any stage;
// accumulated state is kept.
func (c *Controller) OpenSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return
	}
	c.stage = StageConfig
}
