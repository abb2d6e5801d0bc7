// Package page assembles a core.PageReport from raw HTML: page metadata,
// the engine's report and the primary content as Markdown.
package page

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/document"
	"github.com/gaurav-prasanna/accesslens/core/extract"
	"github.com/gaurav-prasanna/accesslens/core/normalize"
)

// UntitledPage is shown when a page has no <title>.
const UntitledPage = "Untitled Page"

// defaultLanguage is assumed when <html> carries no lang attribute.
const defaultLanguage = "en"

// Builder produces page reports. It is safe for concurrent use.
type Builder struct {
	analyzer  core.DocumentAnalyzer
	extractor *extract.HTMLExtractor
	now       func() time.Time
}

// NewBuilder creates a Builder backed by analyzer.
func NewBuilder(analyzer core.DocumentAnalyzer) *Builder {
	return &Builder{
		analyzer:  analyzer,
		extractor: extract.New(),
		now:       time.Now,
	}
}

// Build analyses html, which was read from source (a URL, a file path or
// "-" for standard input). The page is parsed once; the report, metadata
// and Markdown all come from that tree.
func (b *Builder) Build(ctx context.Context, source, html string) (core.PageReport, error) {
	if err := ctx.Err(); err != nil {
		return core.PageReport{}, fmt.Errorf("analyze: %w", err)
	}
	doc := document.Parse(html)
	report, err := b.analyzer.ReportDocument(ctx, doc)
	if err != nil {
		return core.PageReport{}, fmt.Errorf("analyze: %w", err)
	}

	meta := Metadata(source, doc, b.now())

	markdown, err := normalize.New(siteRoot(source)).Normalize(b.extractor.Extract(doc).HTML)
	if err != nil {
		return core.PageReport{}, fmt.Errorf("normalize: %w", err)
	}

	return core.PageReport{Metadata: meta, Report: report, Markdown: markdown}, nil
}

// Metadata describes the page read from source.
func Metadata(source string, doc *document.Document, fetchedAt time.Time) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       source,
		Title:     Title(doc),
		Language:  doc.Lang(),
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
	}
	if meta.Language == "" {
		meta.Language = defaultLanguage
	}
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		meta.Domain = u.Host
		meta.Path = u.Path
	}
	return meta
}

// Title returns the page title or UntitledPage.
func Title(doc *document.Document) string {
	if t := doc.Title(); t != "" {
		return t
	}
	return UntitledPage
}

// siteRoot returns scheme://host for URL sources and "" otherwise.
func siteRoot(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
