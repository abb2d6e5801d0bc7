// Package core defines the shared types and pipeline interfaces for AccessLens.
// The analysis engine consumes raw HTML and returns plain report structures;
// fetching, rendering and writing are separate stages behind interfaces.
package core

import (
	"context"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

// SuggestedFontSize is the minimum comfortable body font size, in pixels.
const SuggestedFontSize = 16

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata extracted from the page and URL.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Preferences are the reader-facing toggles chosen in the UI. The engine
// does not read them; the presentation layer applies them.
type Preferences struct {
	SimplifyContent   bool `json:"simplifyContent" yaml:"simplifyContent"`
	EnhanceContrast   bool `json:"enhanceContrast" yaml:"enhanceContrast"`
	IncreaseFontSize  bool `json:"increaseFontSize" yaml:"increaseFontSize"`
	RemoveAnimations  bool `json:"removeAnimations" yaml:"removeAnimations"`
	ReadingAssistance bool `json:"readingAssistance" yaml:"readingAssistance"`
}

// TransformResult is the content-side half of the diagnosis.
// ContrastRatio is nil when no element had both colors resolved.
type TransformResult struct {
	Content           string   `json:"content"`
	Summary           string   `json:"summary"`
	ReadingLevel      string   `json:"readingLevel"`
	ContrastRatio     *float64 `json:"contrastRatio,omitempty"`
	SuggestedFontSize int      `json:"suggestedFontSize"`
}

// Analysis is the defect-side half of the diagnosis. Issues and
// Suggestions are index-aligned and never empty.
type Analysis struct {
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Report is the complete accessibility diagnosis for one document.
type Report struct {
	Summary           string   `json:"summary"`
	ReadingLevel      string   `json:"readingLevel"`
	ContrastRatio     *float64 `json:"contrastRatio,omitempty"`
	SuggestedFontSize int      `json:"suggestedFontSize"`
	Issues            []string `json:"issues"`
	Suggestions       []string `json:"suggestions"`
}

// PageReport bundles a report with the page it describes and the
// primary content converted to Markdown.
type PageReport struct {
	Metadata PageMetadata `json:"metadata"`
	Report   Report       `json:"report"`
	Markdown string       `json:"markdown,omitempty"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Analyzer produces diagnoses from raw HTML.
type Analyzer interface {
	Transform(ctx context.Context, html string) (TransformResult, error)
	Analyze(ctx context.Context, html string) (Analysis, error)
	Report(ctx context.Context, html string) (Report, error)
}

// DocumentAnalyzer reports on a tree the caller already parsed, so one
// parse serves both the diagnosis and page metadata.
type DocumentAnalyzer interface {
	ReportDocument(ctx context.Context, doc *document.Document) (Report, error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a page report into a final output format.
type Renderer interface {
	Render(page PageReport) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
