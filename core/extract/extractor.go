// Package extract isolates the primary readable content of a page.
// It picks the best content container in priority order:
//  1. <main>, then <article>
//  2. an element with id "main" or "content"
//  3. an element with class "main" or "content"
//  4. <body>
package extract

import (
	"github.com/gaurav-prasanna/accesslens/core/document"
)

// containerSelectors are tried in order; the first one that matches wins.
var containerSelectors = []string{
	"main",
	"article",
	"#main, #content",
	".main, .content",
	"body",
}

// Content is the chosen container and its reader-facing text.
type Content struct {
	// Container is the tag of the element the text came from, or "" when
	// the document has no container at all.
	Container string
	Text      string
	HTML      string
}

// HTMLExtractor selects main content from a parsed document.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the primary content of doc. The text is whitespace
// collapsed and trimmed; a document without text yields "".
func (e *HTMLExtractor) Extract(doc *document.Document) Content {
	for _, sel := range containerSelectors {
		if el, ok := doc.First(sel); ok {
			return Content{
				Container: el.Tag(),
				Text:      document.Collapse(el.Text()),
				HTML:      el.HTML(),
			}
		}
	}
	return Content{}
}

// Text is a convenience for callers that only need the text.
func Text(doc *document.Document) string {
	return New().Extract(doc).Text
}
