package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/contrast"
)

// JSONRenderer emits the page metadata and report as indented JSON, with
// the contrast grade next to the raw ratio.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonPage struct {
	core.PageReport
	ContrastGrade string `json:"contrastGrade,omitempty"`
}

// Render marshals the page report.
func (r *JSONRenderer) Render(page core.PageReport) ([]byte, error) {
	out := jsonPage{PageReport: page}
	if page.Report.ContrastRatio != nil {
		out.ContrastGrade = contrast.Grade(*page.Report.ContrastRatio)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
