// Package contrast measures text/background contrast following WCAG 2.1.
//
// Colors come from an explicit, minimal resolver (see Resolve) rather than
// a browser cascade, so results are deterministic for a given document.
package contrast

import (
	"math"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

// WCAG thresholds for normal-size text.
const (
	MinimumAA  = 4.5
	MinimumAAA = 7.0
)

// Luminance returns the relative luminance of c.
func Luminance(c RGB) float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

func linear(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Ratio returns the contrast ratio between two colors, in [1, 21].
func Ratio(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// Grade names the WCAG band a ratio falls in.
func Grade(ratio float64) string {
	switch {
	case ratio >= MinimumAAA:
		return "AAA"
	case ratio >= MinimumAA:
		return "AA"
	default:
		return "fails WCAG"
	}
}

// Result summarises one pass over a document.
type Result struct {
	// Samples is the number of elements with both colors resolved.
	Samples int
	// Worst is the lowest unrounded ratio seen; zero when Samples is zero.
	Worst float64
	// Failing counts samples below MinimumAA.
	Failing int
}

// Ratio returns the worst ratio rounded to one decimal, or nil when no
// element could be sampled.
func (r Result) Ratio() *float64 {
	if r.Samples == 0 {
		return nil
	}
	v := math.Round(r.Worst*10) / 10
	return &v
}

// Scan samples every element of doc that resolves both colors.
func Scan(doc *document.Document) Result {
	var res Result
	doc.Each(func(el document.Element) {
		s := Resolve(el)
		if !s.Complete() {
			return
		}
		ratio := Ratio(s.Background, s.Foreground)
		if res.Samples == 0 || ratio < res.Worst {
			res.Worst = ratio
		}
		if ratio < MinimumAA {
			res.Failing++
		}
		res.Samples++
	})
	return res
}

// WorstRatio is Scan(doc).Ratio().
func WorstRatio(doc *document.Document) *float64 {
	return Scan(doc).Ratio()
}
