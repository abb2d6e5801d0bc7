// Package document builds the read-only parse tree every analysis stage
// works from. Parsing is lenient (HTML5 tree construction via goquery and
// golang.org/x/net/html) and never fails; <script>, <style> and inert
// <template> subtrees are dropped before the tree is handed out.
package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// strippedSelectors are removed at parse time. Their text is never
// reader-facing content.
var strippedSelectors = []string{"script", "style", "template"}

// Document is an immutable view over a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML. Unclosed tags and invalid nesting
// are repaired the way a browser would; input that cannot be read at all
// yields an empty document.
func Parse(raw string) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		doc = goquery.NewDocumentFromNode(emptyTree())
	}
	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}
	return &Document{doc: doc}
}

// emptyTree returns the html/head/body skeleton of an empty document.
func emptyTree() *html.Node {
	root, err := html.Parse(strings.NewReader(""))
	if err != nil {
		return &html.Node{Type: html.DocumentNode}
	}
	return root
}

// Select returns every element whose tag is in tags, in document order.
func (d *Document) Select(tags ...string) []Element {
	return elements(d.doc.FindMatcher(newTagSet(tags)))
}

// Query returns the elements matching a CSS selector, in document order.
// A selector that does not compile matches nothing.
func (d *Document) Query(selector string) []Element {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return elements(d.doc.FindMatcher(m))
}

// First returns the first element matching selector.
func (d *Document) First(selector string) (Element, bool) {
	found := d.Query(selector)
	if len(found) == 0 {
		return Element{}, false
	}
	return found[0], true
}

// Each calls fn for every element, in document order.
func (d *Document) Each(fn func(Element)) {
	d.doc.FindMatcher(matchFunc(isElement)).Each(func(_ int, s *goquery.Selection) {
		fn(Element{sel: s})
	})
}

// Filter returns every element for which pred reports true, in document order.
func (d *Document) Filter(pred func(Element) bool) []Element {
	var out []Element
	d.Each(func(el Element) {
		if pred(el) {
			out = append(out, el)
		}
	})
	return out
}

// Body returns the <body> element. HTML5 parsing always synthesises one.
func (d *Document) Body() (Element, bool) {
	return d.First("body")
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	t, ok := d.First("title")
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Text())
}

// Lang returns the lang attribute of the root <html> element.
func (d *Document) Lang() string {
	h, ok := d.First("html")
	if !ok {
		return ""
	}
	lang, _ := h.Attr("lang")
	return strings.TrimSpace(lang)
}

// Collapse replaces every run of whitespace with a single space and trims
// the result.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
