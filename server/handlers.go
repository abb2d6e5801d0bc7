package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/document"
	"github.com/gaurav-prasanna/accesslens/core/fetch"
	"github.com/gaurav-prasanna/accesslens/core/page"
	"github.com/gaurav-prasanna/accesslens/core/present"
)

// TransformRequest is the body of POST /api/transform.
type TransformRequest struct {
	URL         string           `json:"url"`
	Preferences core.Preferences `json:"preferences"`
}

// Accessibility is the audit half of a transform response.
type Accessibility struct {
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Display carries the hints the UI uses to draw its meters.
type Display struct {
	ReadingLevelPercent int    `json:"readingLevelPercent"`
	ContrastVerdict     string `json:"contrastVerdict"`
}

// TransformResponse is returned by POST /api/transform.
type TransformResponse struct {
	OriginalURL       string               `json:"originalUrl"`
	Title             string               `json:"title"`
	Content           string               `json:"content"`
	Preferences       core.Preferences     `json:"preferences"`
	Summary           string               `json:"summary"`
	ReadingLevel      string               `json:"readingLevel"`
	ContrastRatio     *float64             `json:"contrastRatio,omitempty"`
	SuggestedFontSize int                  `json:"suggestedFontSize"`
	Accessibility     Accessibility        `json:"accessibility"`
	Presentation      present.Presentation `json:"presentation"`
	Display           Display              `json:"display"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTransform fetches a page, analyses it and returns the content
// together with its diagnosis. The page is parsed and analysed once.
// POST /api/transform
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := fetch.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid URL provided: "+err.Error())
		return
	}

	ctx := r.Context()
	result, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", req.URL).Msg("fetch failed")
		writeError(w, fetchStatus(err), "Failed to fetch the webpage")
		return
	}

	doc := document.Parse(result.HTML)
	report, err := s.analyzer.ReportDocument(ctx, doc)
	if err != nil {
		s.logger.Error().Err(err).Str("url", req.URL).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "Failed to process the webpage")
		return
	}

	writeJSON(w, http.StatusOK, TransformResponse{
		OriginalURL:       req.URL,
		Title:             page.Title(doc),
		Content:           result.HTML,
		Preferences:       req.Preferences,
		Summary:           report.Summary,
		ReadingLevel:      report.ReadingLevel,
		ContrastRatio:     report.ContrastRatio,
		SuggestedFontSize: report.SuggestedFontSize,
		Accessibility:     Accessibility{Issues: report.Issues, Suggestions: report.Suggestions},
		Presentation:      s.presenter.Apply(result.HTML, req.Preferences, report.SuggestedFontSize),
		Display: Display{
			ReadingLevelPercent: present.ReadingLevelPercent(report.ReadingLevel),
			ContrastVerdict:     present.ContrastVerdict(report.ContrastRatio),
		},
	})
}

// handleAnalyze returns the full report for an HTML document posted as
// the request body.
// POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Document too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := s.analyzer.ReportDocument(r.Context(), document.Parse(string(body)))
	if err != nil {
		s.logger.Error().Err(err).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "Failed to process the webpage")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// fetchStatus maps a fetch failure to the response status: the upstream
// error status when there is one, 502 otherwise.
func fetchStatus(err error) int {
	var se *fetch.StatusError
	if errors.As(err, &se) && se.StatusCode >= 400 {
		return se.StatusCode
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
