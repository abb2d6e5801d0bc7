// Package summary builds a short teaser from a page's opening paragraphs.
package summary

import (
	"strings"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

const (
	maxParagraphs = 3
	maxLength     = 300
	ellipsis      = "..."
)

// Generate joins the text of the first three non-empty <p> elements with a
// single space. Results longer than 300 characters are cut to 297 and
// suffixed with "...". A page without paragraphs yields "".
func Generate(doc *document.Document) string {
	parts := make([]string, 0, maxParagraphs)
	for _, p := range doc.Select("p") {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if len(parts) == maxParagraphs {
			break
		}
	}
	return truncate(strings.Join(parts, " "), maxLength)
}

// truncate counts characters, not bytes, so multi-byte text is never split
// mid-rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
