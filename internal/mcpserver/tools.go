package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/promptship/promptship/internal/config"
	"github.com/promptship/promptship/internal/generation"
	"github.com/promptship/promptship/internal/provision/github"
	"github.com/promptship/promptship/internal/provision/vercel"
)

type textOutput struct {
	Message string `json:"message"`
}

// envToken reads a required credential from the environment. MCP hosts
// pass credentials via the server's env block, not tool arguments.
func envToken(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return v, nil
}

// --- generate_project ---

type generateProjectInput struct {
	Prompt string `json:"prompt" jsonschema:"Natural-language description of the project to generate"`
	Mode   string `json:"mode" jsonschema:"Generation mode: site (static site) or app (single-page application)"`
}

func handleGenerateProject(ctx context.Context, req *mcp.CallToolRequest, input generateProjectInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Prompt == "" {
		return nil, textOutput{}, fmt.Errorf("prompt is required")
	}
	apiKey, err := envToken("GEMINI_API_KEY")
	if err != nil {
		return nil, textOutput{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, textOutput{}, err
	}

	mode := generation.ModeSite
	if input.Mode == string(generation.ModeApp) {
		mode = generation.ModeApp
	}

	client := generation.NewClient(cfg.App.GenerationBaseURL, cfg.App.Model)
	project, err := client.GenerateProject(ctx, input.Prompt, mode, apiKey)
	if err != nil {
		return nil, textOutput{}, err
	}

	raw, err := json.Marshal(project)
	if err != nil {
		return nil, textOutput{}, err
	}
	return nil, textOutput{Message: string(raw)}, nil
}

// --- create_repository ---

type createRepositoryInput struct {
	Name        string `json:"name" jsonschema:"Repository name (short lowercase slug)"`
	Description string `json:"description" jsonschema:"Repository description"`
}

func handleCreateRepository(ctx context.Context, req *mcp.CallToolRequest, input createRepositoryInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Name == "" {
		return nil, textOutput{}, fmt.Errorf("name is required")
	}
	token, err := envToken("GITHUB_TOKEN")
	if err != nil {
		return nil, textOutput{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, textOutput{}, err
	}

	client := github.NewClient(cfg.App.GitHubBaseURL)
	login, err := client.VerifyToken(ctx, token)
	if err != nil {
		return nil, textOutput{}, err
	}
	repo, err := client.CreateRepository(ctx, token, login, input.Name, input.Description)
	if err != nil {
		return nil, textOutput{}, err
	}
	return nil, textOutput{Message: fmt.Sprintf("%s (%s)", repo.Name, repo.URL)}, nil
}

// --- push_files ---

type pushFileInput struct {
	Path    string `json:"path" jsonschema:"Repository-relative file path"`
	Content string `json:"content" jsonschema:"Full text content of the file"`
}

type pushFilesInput struct {
	Repository string          `json:"repository" jsonschema:"Repository name under the authenticated account"`
	Files      []pushFileInput `json:"files" jsonschema:"Files to push, in upload order"`
}

func handlePushFiles(ctx context.Context, req *mcp.CallToolRequest, input pushFilesInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Repository == "" {
		return nil, textOutput{}, fmt.Errorf("repository is required")
	}
	if len(input.Files) == 0 {
		return nil, textOutput{}, fmt.Errorf("files is required")
	}
	token, err := envToken("GITHUB_TOKEN")
	if err != nil {
		return nil, textOutput{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, textOutput{}, err
	}

	client := github.NewClient(cfg.App.GitHubBaseURL)
	login, err := client.VerifyToken(ctx, token)
	if err != nil {
		return nil, textOutput{}, err
	}

	files := make([]github.File, len(input.Files))
	for i, f := range input.Files {
		files[i] = github.File{Path: f.Path, Content: f.Content}
	}
	if err := client.PushFiles(ctx, token, login, input.Repository, cfg.App.CommitMessage, files, nil); err != nil {
		return nil, textOutput{}, err
	}
	return nil, textOutput{Message: fmt.Sprintf("pushed %d files to %s/%s", len(files), login, input.Repository)}, nil
}

// --- register_deployment ---

type registerDeploymentInput struct {
	Name    string `json:"name" jsonschema:"Vercel project name"`
	RepoRef string `json:"repo_ref" jsonschema:"GitHub repository reference as account/repository"`
}

func handleRegisterDeployment(ctx context.Context, req *mcp.CallToolRequest, input registerDeploymentInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Name == "" || input.RepoRef == "" {
		return nil, textOutput{}, fmt.Errorf("name and repo_ref are required")
	}
	token, err := envToken("VERCEL_TOKEN")
	if err != nil {
		return nil, textOutput{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, textOutput{}, err
	}

	client := vercel.NewClient(cfg.App.VercelBaseURL)
	project, err := client.RegisterProject(ctx, token, input.Name, input.RepoRef)
	if err != nil {
		return nil, textOutput{}, err
	}
	return nil, textOutput{Message: fmt.Sprintf("registered Vercel project %s (id %s)", project.Name, project.ID)}, nil
}
