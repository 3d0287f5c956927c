package generation

import (
	"strings"
	"testing"
)

const validProjectJSON = `{
  "name": "hello-world",
  "description": "a hello world page",
  "files": [
    {"path": "index.html", "content": "<html>hello</html>"}
  ]
}`

func TestParseProject(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"bare json", validProjectJSON},
		{"json fence", "```json\n" + validProjectJSON + "\n```"},
		{"plain fence", "```\n" + validProjectJSON + "\n```"},
		{"surrounding whitespace", "\n\n  " + validProjectJSON + "  \n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParseProject(tc.input)
			if err != nil {
				t.Fatalf("ParseProject: %v", err)
			}
			if p.Name != "hello-world" {
				t.Errorf("name = %q", p.Name)
			}
			if len(p.Files) != 1 || p.Files[0].Path != "index.html" {
				t.Errorf("files = %+v", p.Files)
			}
		})
	}
}

func TestParseProject_Errors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "empty content"},
		{"not json", "Sure! Here's your project:", "not a valid project"},
		{"no name", `{"description":"x","files":[{"path":"a","content":"b"}]}`, "no name"},
		{"no files", `{"name":"x","description":"y","files":[]}`, "no files"},
		{"file without path", `{"name":"x","files":[{"path":"","content":"b"}]}`, "no path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProject(tc.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestStripCodeFences_KeepsInnerBackticks(t *testing.T) {
	inner := `{"name":"x","files":[{"path":"README.md","content":"use ` + "`npm start`" + `"}]}`
	got := stripCodeFences("```json\n" + inner + "\n```")
	if got != inner {
		t.Errorf("got %q, want inner content untouched", got)
	}
}

func TestFileOrderPreserved(t *testing.T) {
	input := `{"name":"x","files":[
		{"path":"index.html","content":"1"},
		{"path":"style.css","content":"2"},
		{"path":"app.js","content":"3"}
	]}`
	p, err := ParseProject(input)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"index.html", "style.css", "app.js"}
	for i, f := range p.Files {
		if f.Path != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, f.Path, want[i])
		}
	}
}
