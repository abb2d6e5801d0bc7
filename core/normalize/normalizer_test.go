package normalize

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	md, err := New("").Normalize(`<main><h1>Title</h1><p>Some <strong>bold</strong> text.</p></main>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "# Title") {
		t.Fatalf("expected an ATX heading, got %q", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Fatalf("expected bold markup, got %q", md)
	}
}

func TestNormalize_ResolvesLinks(t *testing.T) {
	md, err := New("https://example.com").Normalize(`<p><a href="/docs">Docs</a></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "https://example.com/docs") {
		t.Fatalf("expected absolute link, got %q", md)
	}
}
