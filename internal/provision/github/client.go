// Package github provisions a remote repository over the GitHub REST API:
// token verification, repository creation, and sequential file upload.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps HTTP calls to the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a GitHub client against the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// File is a single repository-relative path and its full text content.
type File struct {
	Path    string
	Content string
}

// Repository identifies a created (or reused) remote repository.
type Repository struct {
	Name string
	URL  string
}

// ProgressFunc is invoked before each file upload with the zero-based
// index and path of the file about to be pushed.
type ProgressFunc func(index int, path string)

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, respData, nil
}

// VerifyToken performs an authenticated identity lookup and returns the
// account login. A non-successful response means the token is invalid.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/user", token, nil)
	if err != nil {
		return "", fmt.Errorf("GitHub unreachable: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("invalid GitHub token (status %d)", resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(data, &user); err != nil || user.Login == "" {
		return "", fmt.Errorf("unexpected identity response from GitHub")
	}
	return user.Login, nil
}

// CreateRepository attempts to create a repository under the verified
// account. When GitHub reports a name collision the existing repository is
// treated as the target: the URL is constructed from the login and the
// requested name rather than queried. Ownership and content compatibility
// of the existing repository are not verified.
func (c *Client) CreateRepository(ctx context.Context, token, login, name, description string) (*Repository, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
	}
	resp, data, err := c.do(ctx, http.MethodPost, "/user/repos", token, body)
	if err != nil {
		return nil, fmt.Errorf("GitHub unreachable: %w", err)
	}

	if resp.StatusCode == http.StatusCreated {
		var created struct {
			Name    string `json:"name"`
			HTMLURL string `json:"html_url"`
		}
		if err := json.Unmarshal(data, &created); err != nil {
			return nil, fmt.Errorf("unexpected create-repository response: %w", err)
		}
		return &Repository{Name: created.Name, URL: created.HTMLURL}, nil
	}

	if isNameCollision(resp.StatusCode, data) {
		return &Repository{
			Name: name,
			URL:  fmt.Sprintf("https://github.com/%s/%s", login, name),
		}, nil
	}

	return nil, fmt.Errorf("repository creation failed: %s", upstreamMessage(resp.StatusCode, data))
}

// isNameCollision reports whether a 422 response is the "name already
// exists on this account" validation error.
func isNameCollision(status int, data []byte) bool {
	if status != http.StatusUnprocessableEntity {
		return false
	}
	return bytes.Contains(data, []byte("already exists"))
}

// upstreamMessage extracts GitHub's error message, falling back to the
// status code when the body has no message.
func upstreamMessage(status int, data []byte) string {
	var ghErr struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &ghErr); err == nil && ghErr.Message != "" {
		msg := ghErr.Message
		for _, e := range ghErr.Errors {
			if e.Message != "" {
				msg += ": " + e.Message
			}
		}
		return msg
	}
	return fmt.Sprintf("status %d", status)
}

// PushFiles uploads files one by one, in the order given. Each upload is
// preceded by a best-effort lookup of the file's current blob SHA so the
// request updates rather than duplicates an existing file; lookup failure
// is treated as "file does not exist yet". onProgress fires before each
// upload. The first failed upload aborts the remaining files; already
// pushed files are not rolled back.
func (c *Client) PushFiles(ctx context.Context, token, login, repo, commitMessage string, files []File, onProgress ProgressFunc) error {
	for i, f := range files {
		if onProgress != nil {
			onProgress(i, f.Path)
		}

		contentsPath := fmt.Sprintf("/repos/%s/%s/contents/%s", login, repo, strings.TrimPrefix(f.Path, "/"))
		sha, _ := c.existingSHA(ctx, token, contentsPath)

		body := map[string]any{
			"message": commitMessage,
			"content": base64.StdEncoding.EncodeToString([]byte(f.Content)),
		}
		if sha != "" {
			body["sha"] = sha
		}

		resp, data, err := c.do(ctx, http.MethodPut, contentsPath, token, body)
		if err != nil {
			return fmt.Errorf("upload failed for %s: %w", f.Path, err)
		}
		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
			return fmt.Errorf("upload failed for %s: %s", f.Path, upstreamMessage(resp.StatusCode, data))
		}
	}
	return nil
}

// existingSHA looks up the current blob SHA of a file. It distinguishes
// not-found from other failures for callers that care, though PushFiles
// tolerates both identically as "no prior version".
func (c *Client) existingSHA(ctx context.Context, token, contentsPath string) (string, error) {
	resp, data, err := c.do(ctx, http.MethodGet, contentsPath, token, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("contents lookup returned %d", resp.StatusCode)
	}

	var existing struct {
		SHA string `json:"sha"`
	}
	if err := json.Unmarshal(data, &existing); err != nil {
		return "", err
	}
	return existing.SHA, nil
}
