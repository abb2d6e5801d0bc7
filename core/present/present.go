// Package present prepares analysed content for display. It is the
// presentation layer's capability: the analysis engine never calls it, and
// nothing here feeds back into a diagnosis.
package present

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/contrast"
	"github.com/gaurav-prasanna/accesslens/core/readability"
)

// Stylesheet fragments, one per preference.
const (
	noAnimationCSS = `*, *::before, *::after {
  animation: none !important;
  transition: none !important;
  scroll-behavior: auto !important;
}`
	highContrastCSS = `body, body * {
  background-color: #ffffff !important;
  color: #000000 !important;
}
a, a * { color: #0000ee !important; text-decoration: underline !important; }`
	readingAssistCSS = `p, li { max-width: 70ch; line-height: 1.8; letter-spacing: 0.02em; }`
)

// Presentation is page content ready to be embedded in the UI.
type Presentation struct {
	Content    string `json:"content"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

// Presenter applies reader preferences to fetched content.
type Presenter struct {
	policy *bluemonday.Policy
}

// New creates a Presenter. Content is sanitised with a user-generated
// content policy: scripts, event handlers and inline styles are dropped.
func New() *Presenter {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("role", "aria-label", "aria-labelledby", "aria-describedby", "lang").Globally()
	return &Presenter{policy: p}
}

// Apply sanitises html and builds the stylesheet for prefs. fontSize is
// the report's suggested size and is used when IncreaseFontSize is set.
func (p *Presenter) Apply(html string, prefs core.Preferences, fontSize int) Presentation {
	return Presentation{
		Content:    p.policy.Sanitize(html),
		Stylesheet: Stylesheet(prefs, fontSize),
	}
}

// Stylesheet returns the CSS the presentation layer injects for prefs.
func Stylesheet(prefs core.Preferences, fontSize int) string {
	var rules []string
	if prefs.RemoveAnimations {
		rules = append(rules, noAnimationCSS)
	}
	if prefs.EnhanceContrast {
		rules = append(rules, highContrastCSS)
	}
	if prefs.IncreaseFontSize {
		if fontSize <= 0 {
			fontSize = core.SuggestedFontSize
		}
		rules = append(rules, fmt.Sprintf("body { font-size: %dpx !important; }", fontSize+4))
	}
	if prefs.ReadingAssistance {
		rules = append(rules, readingAssistCSS)
	}
	return strings.Join(rules, "\n")
}

// ContrastVerdict is the one-line reading of a worst-case ratio shown
// next to the contrast meter.
func ContrastVerdict(ratio *float64) string {
	if ratio == nil {
		return "Not measured - no element declares both colors"
	}
	switch contrast.Grade(*ratio) {
	case "AAA":
		return "Excellent - Meets AAA standards"
	case "AA":
		return "Good - Meets AA standards"
	default:
		return "Poor - Below WCAG standards"
	}
}

// ReadingLevelPercent positions a reading level on a 0-100 meter.
func ReadingLevelPercent(level string) int {
	switch level {
	case readability.LevelCollege:
		return 100
	case readability.LevelTwelfth:
		return 80
	case readability.LevelTenth:
		return 60
	case readability.LevelEighth:
		return 40
	default:
		return 20
	}
}
