package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppConfig_MissingFileUsesDefaults(t *testing.T) {
	app, err := loadAppConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadAppConfig: %v", err)
	}
	if app != defaultAppConfig() {
		t.Errorf("got %+v, want defaults", app)
	}
}

func TestLoadAppConfig_OverlaysFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "model: gemini-2.5-pro\nhosting_domain: example.dev\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := loadAppConfig(path)
	if err != nil {
		t.Fatalf("loadAppConfig: %v", err)
	}
	if app.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", app.Model)
	}
	if app.HostingDomain != "example.dev" {
		t.Errorf("HostingDomain = %q", app.HostingDomain)
	}
	// Fields absent from the file keep their defaults.
	def := defaultAppConfig()
	if app.GitHubBaseURL != def.GitHubBaseURL {
		t.Errorf("GitHubBaseURL = %q, want default", app.GitHubBaseURL)
	}
	if app.CommitMessage != def.CommitMessage {
		t.Errorf("CommitMessage = %q, want default", app.CommitMessage)
	}
}

func TestLoadAppConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAppConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
