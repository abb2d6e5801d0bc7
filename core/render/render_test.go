package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/accesslens/core"
)

func samplePage(ratio *float64) core.PageReport {
	return core.PageReport{
		Metadata: core.PageMetadata{URL: "https://example.com/a", Title: "Example"},
		Report: core.Report{
			Summary:           "A short summary.",
			ReadingLevel:      "8th Grade",
			ContrastRatio:     ratio,
			SuggestedFontSize: 16,
			Issues:            []string{"2 images lack alt text", "Heading hierarchy skips from H1 to H3"},
			Suggestions:       []string{"Add descriptive alt text to all images", "Ensure heading levels are properly nested"},
		},
		Markdown: "# Example\n\nSome **content**.",
	}
}

func ratio(f float64) *float64 { return &f }

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(samplePage(ratio(4.5)))
	if err != nil {
		t.Fatal(err)
	}
	md := string(out)
	for _, want := range []string{
		"# Accessibility report: Example",
		"Source: https://example.com/a",
		"- Reading level: 8th Grade",
		"- Contrast: 4.5:1 (AA)",
		"- Suggested font size: 16px",
		"1. 2 images lack alt text\n   - Suggestion: Add descriptive alt text to all images",
		"2. Heading hierarchy skips from H1 to H3",
		"## Content",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in output:\n%s", want, md)
		}
	}
}

func TestContrastLabel(t *testing.T) {
	if got := ContrastLabel(nil); !strings.HasPrefix(got, "not measured") {
		t.Fatalf("got %q", got)
	}
	if got := ContrastLabel(ratio(21)); got != "21.0:1 (AAA)" {
		t.Fatalf("got %q", got)
	}
	if got := ContrastLabel(ratio(2.3)); got != "2.3:1 (fails WCAG)" {
		t.Fatalf("got %q", got)
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(samplePage(nil))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	report := decoded["report"].(map[string]any)
	if _, ok := report["contrastRatio"]; ok {
		t.Fatal("absent ratio must be omitted, not zero")
	}
	if _, ok := decoded["contrastGrade"]; ok {
		t.Fatal("grade must be omitted without a ratio")
	}

	out, err = NewJSONRenderer().Render(samplePage(ratio(7.2)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`"contrastGrade": "AAA"`)) {
		t.Fatalf("expected AAA grade in %s", out)
	}
}

func TestPDFRenderer(t *testing.T) {
	for _, r := range []*float64{nil, ratio(2.1), ratio(5), ratio(12)} {
		out, err := NewPDFRenderer().Render(samplePage(r))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatal("expected a PDF header")
		}
	}
}

func TestExtensions(t *testing.T) {
	renderers := map[string]core.Renderer{
		".md":   NewMarkdownRenderer(),
		".json": NewJSONRenderer(),
		".pdf":  NewPDFRenderer(),
	}
	for ext, r := range renderers {
		if r.Extension() != ext {
			t.Errorf("expected %s, got %s", ext, r.Extension())
		}
	}
}
