// Package output handles file naming and writing for rendered reports.
// A single report is named after its source (example_com_docs.report.md);
// a site audit mirrors the URL path structure under the output directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// reportSuffix is inserted before the renderer extension.
const reportSuffix = ".report"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOne writes a single report. source is a URL, a file path or "-"
// for standard input.
func (w *Writer) WriteOne(source string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FilenameFor(source)+reportSuffix+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteSite writes one report of a site audit, mirroring the URL path.
// Example: https://site.com/docs/intro → ./docs/intro.report.md
func (w *Writer) WriteSite(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	urlPath := strings.TrimSuffix(parsed.Path, "/")
	if urlPath == "" {
		urlPath = "/index"
	}
	segments := strings.Split(strings.TrimPrefix(urlPath, "/"), "/")
	for i, seg := range segments {
		segments[i] = sanitize(seg)
	}

	fullPath := filepath.Join(append([]string{w.OutputDir}, segments...)...) + reportSuffix + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FilenameFor converts a report source into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func FilenameFor(source string) string {
	if source == "-" || source == "" {
		return "stdin"
	}
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(source)
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
