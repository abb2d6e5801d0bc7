package contrast

import (
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

// Style is the resolved color pair of one element. Only colors declared on
// the element itself count: there is no cascade, inheritance or user-agent
// default, so an element without both colors is simply not sampled.
type Style struct {
	Background    RGB
	Foreground    RGB
	HasBackground bool
	HasForeground bool
}

// Complete reports whether both colors resolved.
func (s Style) Complete() bool {
	return s.HasBackground && s.HasForeground
}

// presentational attributes consulted when the inline style is silent.
var (
	backgroundAttrs = []string{"bgcolor"}
	foregroundAttrs = []string{"color", "text"}
)

// Resolve computes the Style of el from its inline style attribute,
// falling back to legacy presentational attributes.
func Resolve(el document.Element) Style {
	var s Style
	decl := inlineDeclarations(el)

	if v, ok := decl["background-color"]; ok {
		s.Background, s.HasBackground = ParseColor(v)
	} else if v, ok := decl["background"]; ok {
		s.Background, s.HasBackground = backgroundColor(v)
	}
	if v, ok := decl["color"]; ok {
		s.Foreground, s.HasForeground = ParseColor(v)
	}

	if !s.HasBackground {
		s.Background, s.HasBackground = attrColor(el, backgroundAttrs)
	}
	if !s.HasForeground {
		s.Foreground, s.HasForeground = attrColor(el, foregroundAttrs)
	}
	return s
}

// inlineDeclarations returns the effective value of each property in the
// style attribute. A later declaration wins unless an earlier one is
// !important. Declarations are parsed one at a time so a blank or
// malformed entry only loses itself.
func inlineDeclarations(el document.Element) map[string]string {
	raw, ok := el.Attr("style")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make(map[string]string)
	important := make(map[string]bool)
	for _, part := range splitDeclarations(raw) {
		decls, err := parser.ParseDeclarations(part + ";")
		if err != nil {
			continue
		}
		for _, d := range decls {
			prop := strings.ToLower(strings.TrimSpace(d.Property))
			value := strings.TrimSpace(d.Value)
			isImportant := d.Important || strings.HasSuffix(value, "!important")
			if prop == "" || (important[prop] && !isImportant) {
				continue
			}
			out[prop] = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
			important[prop] = important[prop] || isImportant
		}
	}
	return out
}

// splitDeclarations splits a declaration block on semicolons that are not
// inside quotes or parentheses and drops blank entries.
func splitDeclarations(block string) []string {
	var (
		out   []string
		cur   strings.Builder
		depth int
		quote rune
	)
	flush := func() {
		if part := strings.TrimSpace(cur.String()); part != "" {
			out = append(out, part)
		}
		cur.Reset()
	}
	for _, r := range block {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case r == ';' && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return out
}

// backgroundColor picks the color layer out of a background shorthand.
func backgroundColor(v string) (RGB, bool) {
	for _, tok := range splitOutsideParens(v) {
		if c, ok := ParseColor(tok); ok {
			return c, true
		}
	}
	return RGB{}, false
}

func attrColor(el document.Element, attrs []string) (RGB, bool) {
	for _, a := range attrs {
		if v, ok := el.Attr(a); ok {
			if c, ok := ParseColor(v); ok {
				return c, true
			}
		}
	}
	return RGB{}, false
}

// splitOutsideParens splits on whitespace that is not inside a function
// call, so "rgb(1, 2, 3) url(x.png)" yields two tokens.
func splitOutsideParens(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
