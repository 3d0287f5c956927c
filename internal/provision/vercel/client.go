// Package vercel registers a GitHub repository as a Vercel project.
package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the Vercel REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Vercel client against the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// Project is the handle returned by project registration. Note that the
// public deployment URL is not part of this handle; callers approximate it
// from the project name.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegisterProject links "login/repo" to a new Vercel project so pushes
// trigger deployments. repoRef is the "account/repository" reference.
func (c *Client) RegisterProject(ctx context.Context, token, name, repoRef string) (*Project, error) {
	body := map[string]any{
		"name": name,
		"gitRepository": map[string]string{
			"type": "github",
			"repo": repoRef,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal project registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v10/projects", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Vercel unreachable: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var vErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respData, &vErr) == nil && vErr.Error.Message != "" {
			return nil, fmt.Errorf("Vercel registration failed: %s", vErr.Error.Message)
		}
		return nil, fmt.Errorf("Vercel registration returned %d", resp.StatusCode)
	}

	var p Project
	if err := json.Unmarshal(respData, &p); err != nil {
		return nil, fmt.Errorf("unexpected registration response: %w", err)
	}
	return &p, nil
}
