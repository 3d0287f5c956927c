package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func generateContentResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGenerateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("path = %s, want generateContent endpoint", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "gk_test" {
			t.Errorf("api key header = %q", got)
		}

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Contents) == 0 || !strings.Contains(body.Contents[0].Parts[0].Text, "a hello world page") {
			t.Error("prompt missing from request body")
		}

		fmt.Fprint(w, generateContentResponse(validProjectJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash")
	p, err := c.GenerateProject(context.Background(), "a hello world page", ModeSite, "gk_test")
	if err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}
	if p.Name != "hello-world" || len(p.Files) != 1 {
		t.Errorf("project = %+v", p)
	}
}

func TestGenerateProject_FencedModelOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, generateContentResponse("```json\n"+validProjectJSON+"\n```"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash")
	p, err := c.GenerateProject(context.Background(), "x", ModeSite, "gk")
	if err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}
	if p.Name != "hello-world" {
		t.Errorf("name = %q", p.Name)
	}
}

func TestGenerateProject_UpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash")
	_, err := c.GenerateProject(context.Background(), "x", ModeSite, "bad")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("error = %v, want upstream message", err)
	}
}

func TestGenerateProject_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "gemini-2.0-flash")
	_, err := c.GenerateProject(context.Background(), "x", ModeSite, "gk")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "no content") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateProject_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "gemini-2.0-flash")
	_, err := c.GenerateProject(context.Background(), "x", ModeSite, "gk")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("error = %v, want unreachable", err)
	}
}
