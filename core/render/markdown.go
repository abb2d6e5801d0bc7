// Package render provides output renderers for accessibility reports.
// This file implements the Markdown renderer, which the PDF renderer also
// uses as its layout source.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/contrast"
)

// MarkdownRenderer writes a report as a Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render formats the report, followed by the page content when present.
func (r *MarkdownRenderer) Render(page core.PageReport) ([]byte, error) {
	var b strings.Builder
	rep := page.Report

	fmt.Fprintf(&b, "# Accessibility report: %s\n\n", titleOf(page.Metadata))
	if page.Metadata.URL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", page.Metadata.URL)
	}

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- Reading level: %s\n", rep.ReadingLevel)
	fmt.Fprintf(&b, "- Contrast: %s\n", ContrastLabel(rep.ContrastRatio))
	fmt.Fprintf(&b, "- Suggested font size: %dpx\n\n", rep.SuggestedFontSize)

	if rep.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(rep.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString("## Issues\n\n")
	for i, issue := range rep.Issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
		if i < len(rep.Suggestions) {
			fmt.Fprintf(&b, "   - Suggestion: %s\n", rep.Suggestions[i])
		}
	}

	if page.Markdown != "" {
		b.WriteString("\n## Content\n\n")
		b.WriteString(page.Markdown)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContrastLabel formats a worst-case ratio with its WCAG band.
func ContrastLabel(ratio *float64) string {
	if ratio == nil {
		return "not measured (no element declares both colors)"
	}
	return fmt.Sprintf("%.1f:1 (%s)", *ratio, contrast.Grade(*ratio))
}

func titleOf(meta core.PageMetadata) string {
	switch {
	case meta.Title != "":
		return meta.Title
	case meta.URL != "":
		return meta.URL
	default:
		return "Untitled Page"
	}
}
