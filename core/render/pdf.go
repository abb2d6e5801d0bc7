package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/contrast"
)

var (
	numberedItem = regexp.MustCompile(`^\d+\.\s`)
	boldMarkers  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarker = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	mdLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// PDFRenderer lays out the Markdown report with gofpdf: graded headings,
// numbered issues with their suggestions indented underneath and a colored
// contrast badge. Images are not rendered.
type PDFRenderer struct {
	md *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{md: NewMarkdownRenderer()}
}

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(page core.PageReport) ([]byte, error) {
	markdown, err := r.md.Render(page)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	inCodeBlock := false
	for _, line := range strings.Split(string(markdown), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}
		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)

		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(line, "# "))), level)

		case strings.HasPrefix(trimmed, "- Contrast:"):
			renderContrast(pdf, tr, page.Report.ContrastRatio)

		case strings.HasPrefix(trimmed, "- Suggestion:"):
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(60, 90, 140)
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 4.5, tr(cleanInlineMarkdown(strings.TrimPrefix(trimmed, "- "))), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)

		case numberedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)

		case strings.HasPrefix(trimmed, "Source: "):
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(trimmed), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderContrast writes the contrast line in the color of its WCAG band.
func renderContrast(pdf *gofpdf.Fpdf, tr func(string) string, ratio *float64) {
	switch {
	case ratio == nil:
		pdf.SetTextColor(100, 100, 100)
	case contrast.Grade(*ratio) == "AAA":
		pdf.SetTextColor(20, 110, 40)
	case contrast.Grade(*ratio) == "AA":
		pdf.SetTextColor(150, 100, 0)
	default:
		pdf.SetTextColor(180, 20, 20)
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 5, tr("• Contrast: "+ContrastLabel(ratio)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = boldMarkers.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "__", "")
	text = italicMarker.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
