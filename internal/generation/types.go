package generation

import "fmt"

// Mode selects the flavor of project the model is asked to produce.
type Mode string

const (
	// ModeSite asks for a static site (HTML/CSS/JS only).
	ModeSite Mode = "site"
	// ModeApp asks for a small single-page application.
	ModeApp Mode = "app"
)

// FileNode is a single generated file: a repository-relative path and its
// full text content. Paths are used as-is; no traversal or duplicate
// checking is performed.
type FileNode struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Project is the materialized output of one generation call.
// It is immutable after creation and discarded on workflow reset.
type Project struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Files       []FileNode `json:"files"`
}

// Validate checks that the parsed project has the expected shape.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project has no name")
	}
	if len(p.Files) == 0 {
		return fmt.Errorf("project %q has no files", p.Name)
	}
	for i, f := range p.Files {
		if f.Path == "" {
			return fmt.Errorf("project %q: file %d has no path", p.Name, i)
		}
	}
	return nil
}
