// Package generation turns a natural-language prompt into a named project
// with an ordered list of files, using the Gemini generateContent API.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the generative-language REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewClient creates a generation client against the given API base URL.
func NewClient(baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    baseURL,
		model:      model,
	}
}

// systemInstruction is the fixed framing for every generation call.
// The model must answer with a single JSON object and nothing else.
const systemInstruction = `You generate complete, small web projects. ` +
	`Respond with a single JSON object of the shape ` +
	`{"name": string, "description": string, "files": [{"path": string, "content": string}]}. ` +
	`The name must be a short lowercase hyphenated slug. ` +
	`Every file must be complete and self-contained. Do not include any text outside the JSON.`

func modeInstruction(mode Mode) string {
	switch mode {
	case ModeApp:
		return "Produce a small single-page application with index.html as the entry point."
	default:
		return "Produce a static site with index.html as the entry point. HTML, CSS and vanilla JS only."
	}
}

// Request/response shapes for the generateContent endpoint. Only the
// fields we read or write are declared.

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	GenerationConfig  genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateProject sends the prompt to the model and parses the response
// into a Project. A single failed attempt surfaces immediately: there are
// no retries, and no partial project is ever returned.
func (c *Client) GenerateProject(ctx context.Context, prompt string, mode Mode, apiKey string) (*Project, error) {
	body := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: modeInstruction(mode) + "\n\nRequest: " + prompt}}},
		},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		GenerationConfig:  genConfig{ResponseMIMEType: "application/json"},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}

	var gr generateResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the upstream message when the body carries one.
		if json.Unmarshal(respData, &gr) == nil && gr.Error.Message != "" {
			return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, gr.Error.Message)
		}
		return nil, fmt.Errorf("generation service returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respData, &gr); err != nil {
		return nil, fmt.Errorf("parse generation response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generation response has no content")
	}

	return ParseProject(gr.Candidates[0].Content.Parts[0].Text)
}
