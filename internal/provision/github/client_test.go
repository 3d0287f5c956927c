package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("path = %s, want /user", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"login":"octocat"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	login, err := c.VerifyToken(ctx, "good")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if login != "octocat" {
		t.Errorf("login = %q, want octocat", login)
	}

	if _, err := c.VerifyToken(ctx, "bad"); err == nil {
		t.Fatal("expected an error for a rejected token")
	} else if !strings.Contains(err.Error(), "invalid GitHub token") {
		t.Errorf("error = %v, want invalid-token message", err)
	}
}

func TestCreateRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/repos" || r.Method != http.MethodPost {
			t.Errorf("%s %s, want POST /user/repos", r.Method, r.URL.Path)
		}
		var body struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"name":%q,"html_url":"https://github.com/octocat/%s"}`, body.Name, body.Name)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	repo, err := c.CreateRepository(context.Background(), "tok", "octocat", "hello-world", "a page")
	if err != nil {
		t.Fatalf("CreateRepository: %v", err)
	}
	if repo.Name != "hello-world" {
		t.Errorf("name = %q", repo.Name)
	}
	if repo.URL != "https://github.com/octocat/hello-world" {
		t.Errorf("url = %q", repo.URL)
	}
}

func TestCreateRepository_CollisionFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Repository creation failed.","errors":[{"message":"name already exists on this account"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	repo, err := c.CreateRepository(context.Background(), "tok", "octocat", "hello-world", "")
	if err != nil {
		t.Fatalf("collision must not be an error: %v", err)
	}
	// The URL is built from the verified login and the requested name, not
	// queried from the existing repository.
	if repo.URL != "https://github.com/octocat/hello-world" {
		t.Errorf("url = %q", repo.URL)
	}
	if repo.Name != "hello-world" {
		t.Errorf("name = %q", repo.Name)
	}
}

func TestCreateRepository_SequentialCallsAreIdempotent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"name":"site","html_url":"https://github.com/octocat/site"}`)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"errors":[{"message":"name already exists on this account"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		repo, err := c.CreateRepository(ctx, "tok", "octocat", "site", "")
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if repo.URL != "https://github.com/octocat/site" {
			t.Errorf("call %d: url = %q", i+1, repo.URL)
		}
	}
}

func TestCreateRepository_OtherErrorPropagatesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateRepository(context.Background(), "tok", "octocat", "site", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "API rate limit exceeded") {
		t.Errorf("error = %v, want upstream message passthrough", err)
	}
}

func TestPushFiles(t *testing.T) {
	type putReq struct {
		path    string
		message string
		content string
		sha     string
	}
	var puts []putReq

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// index.html already exists; everything else does not.
			if strings.HasSuffix(r.URL.Path, "/index.html") {
				fmt.Fprint(w, `{"sha":"abc123"}`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			var body struct {
				Message string `json:"message"`
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			puts = append(puts, putReq{
				path:    r.URL.Path,
				message: body.Message,
				content: body.Content,
				sha:     body.SHA,
			})
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		}
	}))
	defer srv.Close()

	files := []File{
		{Path: "index.html", Content: "<html></html>"},
		{Path: "style.css", Content: "body{}"},
	}
	var progress []string

	c := NewClient(srv.URL)
	err := c.PushFiles(context.Background(), "tok", "octocat", "site", "Add generated project files", files, func(i int, path string) {
		progress = append(progress, fmt.Sprintf("%d:%s", i, path))
	})
	if err != nil {
		t.Fatalf("PushFiles: %v", err)
	}

	if len(puts) != 2 {
		t.Fatalf("uploads = %d, want 2", len(puts))
	}
	if puts[0].path != "/repos/octocat/site/contents/index.html" {
		t.Errorf("first upload path = %q", puts[0].path)
	}
	if puts[0].sha != "abc123" {
		t.Errorf("existing file should carry its SHA, got %q", puts[0].sha)
	}
	if puts[1].sha != "" {
		t.Errorf("new file should carry no SHA, got %q", puts[1].sha)
	}
	for i, f := range files {
		want := base64.StdEncoding.EncodeToString([]byte(f.Content))
		if puts[i].content != want {
			t.Errorf("upload %d content = %q, want base64 of file", i, puts[i].content)
		}
		if puts[i].message != "Add generated project files" {
			t.Errorf("upload %d message = %q", i, puts[i].message)
		}
	}

	wantProgress := []string{"0:index.html", "1:style.css"}
	for i, p := range wantProgress {
		if progress[i] != p {
			t.Errorf("progress[%d] = %q, want %q", i, progress[i], p)
		}
	}
}

func TestPushFiles_AbortsOnFirstFailure(t *testing.T) {
	var uploads []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			uploads = append(uploads, r.URL.Path)
			if strings.HasSuffix(r.URL.Path, "/broken.js") {
				w.WriteHeader(http.StatusUnprocessableEntity)
				fmt.Fprint(w, `{"message":"content is not valid"}`)
				return
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		}
	}))
	defer srv.Close()

	files := []File{
		{Path: "index.html", Content: "a"},
		{Path: "broken.js", Content: "b"},
		{Path: "style.css", Content: "c"},
	}
	var progress []string

	c := NewClient(srv.URL)
	err := c.PushFiles(context.Background(), "tok", "octocat", "site", "msg", files, func(_ int, path string) {
		progress = append(progress, path)
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "upload failed for broken.js") {
		t.Errorf("error = %v, want per-file upload failure", err)
	}

	// The file after the failure is never attempted.
	if len(uploads) != 2 {
		t.Errorf("uploads = %v, want index.html and broken.js only", uploads)
	}
	// Progress fires before each attempted upload, including the failed
	// one, and never for files after the failure.
	want := []string{"index.html", "broken.js"}
	if len(progress) != len(want) {
		t.Fatalf("progress = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d] = %q, want %q", i, progress[i], want[i])
		}
	}
}

func TestPushFiles_ToleratesLookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// Lookup blows up entirely; the upload must still proceed.
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodPut:
			var body struct {
				SHA string `json:"sha"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.SHA != "" {
				t.Errorf("sha = %q, want empty after failed lookup", body.SHA)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.PushFiles(context.Background(), "tok", "octocat", "site", "msg",
		[]File{{Path: "index.html", Content: "x"}}, nil)
	if err != nil {
		t.Fatalf("PushFiles: %v", err)
	}
}
