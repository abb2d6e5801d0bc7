package audit

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/accesslens/core/contrast"
	"github.com/gaurav-prasanna/accesslens/core/document"
)

// MissingAltText reports, as one aggregate count, every <img> without an
// alt attribute. An empty alt="" marks a decorative image and passes.
func MissingAltText(doc *document.Document) []Issue {
	missing := 0
	for _, img := range doc.Select("img") {
		if !img.HasAttr("alt") {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}
	return []Issue{{
		Message:    fmt.Sprintf("%d images lack alt text", missing),
		Suggestion: "Add descriptive alt text to all images",
	}}
}

// HeadingHierarchy reports every place the heading level jumps down by
// more than one. The walk starts at level 0, so a page opening with <h2>
// is a skip from H0.
func HeadingHierarchy(doc *document.Document) []Issue {
	var issues []Issue
	prev := 0
	for _, h := range doc.Select("h1", "h2", "h3", "h4", "h5", "h6") {
		level := int(h.Tag()[1] - '0')
		if level-prev > 1 {
			issues = append(issues, Issue{
				Message:    fmt.Sprintf("Heading hierarchy skips from H%d to H%d", prev, level),
				Suggestion: "Ensure heading levels are properly nested",
			})
		}
		prev = level
	}
	return issues
}

// UnlabeledFormFields reports each input, select and textarea that has no
// associated label and no aria-label.
func UnlabeledFormFields(doc *document.Document) []Issue {
	labelled := make(map[string]bool)
	for _, l := range doc.Select("label") {
		if id, ok := l.Attr("for"); ok && id != "" {
			labelled[id] = true
		}
	}

	var issues []Issue
	for _, field := range doc.Select("input", "select", "textarea") {
		if hasLabel(field, labelled) {
			continue
		}
		issues = append(issues, Issue{
			Message:    "Form element missing label: " + fieldName(field),
			Suggestion: "Add labels or aria-labels to all form elements",
		})
	}
	return issues
}

func hasLabel(field document.Element, labelled map[string]bool) bool {
	for _, attr := range []string{"aria-label", "aria-labelledby", "label"} {
		if field.HasAttr(attr) {
			return true
		}
	}
	if id := field.ID(); id != "" && labelled[id] {
		return true
	}
	for _, anc := range field.Ancestors() {
		if anc.Tag() == "label" {
			return true
		}
	}
	return false
}

func fieldName(field document.Element) string {
	if name, _ := field.Attr("name"); name != "" {
		return name
	}
	if id := field.ID(); id != "" {
		return id
	}
	return "unnamed element"
}

// InsufficientContrast reports a single aggregate issue when any sampled
// element falls below the WCAG AA ratio. It makes its own pass over the
// document.
func InsufficientContrast(doc *document.Document) []Issue {
	if contrast.Scan(doc).Failing == 0 {
		return nil
	}
	return []Issue{{
		Message:    "Some text elements have insufficient color contrast",
		Suggestion: "Increase color contrast to meet WCAG 2.1 AA standards (minimum 4.5:1)",
	}}
}

// UnnamedInteractive reports each button, link or role="button" element
// with neither an aria-label nor visible text.
func UnnamedInteractive(doc *document.Document) []Issue {
	var issues []Issue
	for _, el := range doc.Query(`button, a, [role="button"]`) {
		if el.HasAttr("aria-label") || strings.TrimSpace(el.Text()) != "" {
			continue
		}
		issues = append(issues, Issue{
			Message:    "Interactive element lacks accessible name",
			Suggestion: "Add aria-labels to interactive elements without visible text",
		})
	}
	return issues
}
