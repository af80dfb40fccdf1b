package docs

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"
)

type document struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Paths map[string]map[string]any `json:"paths"`
}

func load(t *testing.T) document {
	t.Helper()
	var d document
	if err := json.Unmarshal(Document, &d); err != nil {
		t.Fatalf("swagger.json does not parse: %v", err)
	}
	return d
}

var routeRe = regexp.MustCompile(`(?m)^// @Router\s+(\S+)\s+\[(\w+)\]`)

// every annotated route must be present so the served document matches the handlers
func TestDocument_CoversAnnotatedRoutes(t *testing.T) {
	d := load(t)
	for _, src := range []string{
		"../analytics/http/handlers.go",
		"../meta/http/handlers.go",
	} {
		b, err := os.ReadFile(src)
		if err != nil {
			t.Fatalf("read %s: %v", src, err)
		}
		found := routeRe.FindAllStringSubmatch(string(b), -1)
		if len(found) == 0 {
			t.Fatalf("%s has no @Router annotations", src)
		}
		for _, m := range found {
			path, method := m[1], strings.ToLower(m[2])
			if _, ok := d.Paths[path][method]; !ok {
				t.Fatalf("%s: %s %s annotated but missing from swagger.json", src, method, path)
			}
		}
	}
}

func TestDocument_TitleMatchesGeneralInfo(t *testing.T) {
	d := load(t)
	b, err := os.ReadFile("../../../../cmd/hranalytics-api/main.go")
	if err != nil {
		t.Fatalf("read main.go: %v", err)
	}
	m := regexp.MustCompile(`(?m)^// @title\s+(.+)$`).FindStringSubmatch(string(b))
	if m == nil {
		t.Fatalf("main.go has no @title")
	}
	if got := strings.TrimSpace(m[1]); got != d.Info.Title {
		t.Fatalf("@title = %q, document title = %q", got, d.Info.Title)
	}
}
