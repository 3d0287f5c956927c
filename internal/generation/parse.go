package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseProject extracts a Project from model output. Models sometimes wrap
// the JSON in markdown code fences even when asked not to, so fences are
// stripped before unmarshalling.
func ParseProject(text string) (*Project, error) {
	cleaned := stripCodeFences(text)
	if cleaned == "" {
		return nil, fmt.Errorf("model returned empty content")
	}

	var p Project
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("model output is not a valid project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// stripCodeFences removes a surrounding ```json ... ``` (or plain ```)
// fence and trims whitespace. Content without fences is returned as-is.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "json" || first == "" {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
