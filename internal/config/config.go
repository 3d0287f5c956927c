package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// appConfigFile is the optional YAML file with non-secret defaults.
const appConfigFile = "config.yaml"

// Config holds the CLI configuration.
type Config struct {
	// Root is the promptship state directory (~/.promptship).
	Root string

	// App holds tunable defaults loaded from Root/config.yaml.
	App AppConfig
}

// AppConfig holds non-secret defaults. Every field has a compiled-in
// default so the file is optional.
type AppConfig struct {
	// Model is the generative model used for project generation.
	Model string `yaml:"model"`

	// GenerationBaseURL is the base URL of the generative-language API.
	GenerationBaseURL string `yaml:"generation_base_url"`

	// GitHubBaseURL is the base URL of the GitHub REST API.
	GitHubBaseURL string `yaml:"github_base_url"`

	// VercelBaseURL is the base URL of the Vercel REST API.
	VercelBaseURL string `yaml:"vercel_base_url"`

	// HostingDomain is the domain used to approximate deployment URLs.
	HostingDomain string `yaml:"hosting_domain"`

	// CommitMessage is the message used for every pushed file.
	CommitMessage string `yaml:"commit_message"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Model:             "gemini-2.0-flash",
		GenerationBaseURL: "https://generativelanguage.googleapis.com/v1beta",
		GitHubBaseURL:     "https://api.github.com",
		VercelBaseURL:     "https://api.vercel.com",
		HostingDomain:     "vercel.app",
		CommitMessage:     "Add generated project files",
	}
}

// Load resolves the state directory and reads the optional app config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	root := filepath.Join(home, ".promptship")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	app, err := loadAppConfig(filepath.Join(root, appConfigFile))
	if err != nil {
		return nil, err
	}

	return &Config{Root: root, App: app}, nil
}

// loadAppConfig reads the YAML config, overlaying it on the defaults.
// A missing file is not an error.
func loadAppConfig(path string) (AppConfig, error) {
	app := defaultAppConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return app, nil
	}
	if err != nil {
		return app, fmt.Errorf("read %s: %w", appConfigFile, err)
	}

	if err := yaml.Unmarshal(data, &app); err != nil {
		return app, fmt.Errorf("parse %s: %w", appConfigFile, err)
	}

	// Re-fill any field the file explicitly blanked.
	def := defaultAppConfig()
	if app.Model == "" {
		app.Model = def.Model
	}
	if app.GenerationBaseURL == "" {
		app.GenerationBaseURL = def.GenerationBaseURL
	}
	if app.GitHubBaseURL == "" {
		app.GitHubBaseURL = def.GitHubBaseURL
	}
	if app.VercelBaseURL == "" {
		app.VercelBaseURL = def.VercelBaseURL
	}
	if app.HostingDomain == "" {
		app.HostingDomain = def.HostingDomain
	}
	if app.CommitMessage == "" {
		app.CommitMessage = def.CommitMessage
	}

	return app, nil
}
