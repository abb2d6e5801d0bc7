// Package audit runs rule-based structural accessibility checks over a
// parsed document. Every rule is independent and silent when the page
// complies; each finding carries its own remediation suggestion.
package audit

import (
	"github.com/gaurav-prasanna/accesslens/core/document"
)

// Fallback pair returned when no rule fires.
const (
	NoIssuesMessage    = "No major accessibility issues detected"
	NoIssuesSuggestion = "Continue maintaining good accessibility practices"
)

// Issue is one defect together with how to fix it.
type Issue struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Rule inspects a document and reports the defects it finds.
type Rule func(doc *document.Document) []Issue

// DefaultRules are run, in order, by New.
var DefaultRules = []Rule{
	MissingAltText,
	HeadingHierarchy,
	UnlabeledFormFields,
	InsufficientContrast,
	UnnamedInteractive,
}

// Auditor applies a fixed list of rules.
type Auditor struct {
	rules []Rule
}

// New creates an Auditor with DefaultRules.
func New() *Auditor {
	return &Auditor{rules: DefaultRules}
}

// WithRules creates an Auditor running only rules.
func WithRules(rules ...Rule) *Auditor {
	return &Auditor{rules: rules}
}

// Audit runs every rule and concatenates their findings. The result is
// never empty: a clean document yields the single fallback issue.
func (a *Auditor) Audit(doc *document.Document) []Issue {
	var issues []Issue
	for _, rule := range a.rules {
		issues = append(issues, rule(doc)...)
	}
	if len(issues) == 0 {
		return []Issue{{Message: NoIssuesMessage, Suggestion: NoIssuesSuggestion}}
	}
	return issues
}

// Split returns the messages and suggestions as two index-aligned slices.
func Split(issues []Issue) (messages, suggestions []string) {
	messages = make([]string, len(issues))
	suggestions = make([]string, len(issues))
	for i, is := range issues {
		messages[i] = is.Message
		suggestions[i] = is.Suggestion
	}
	return messages, suggestions
}
