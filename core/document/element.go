package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a read-only handle on one element of a Document.
type Element struct {
	sel *goquery.Selection
}

// Tag returns the lower-case tag name.
func (e Element) Tag() string {
	if e.sel == nil {
		return ""
	}
	return goquery.NodeName(e.sel)
}

// Attr returns the value of the named attribute. Keys are case-insensitive.
func (e Element) Attr(key string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	return e.sel.Attr(strings.ToLower(key))
}

// HasAttr reports whether the attribute is present, whatever its value.
func (e Element) HasAttr(key string) bool {
	_, ok := e.Attr(key)
	return ok
}

// ID returns the id attribute, or "".
func (e Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// HasClass reports whether class is one of the element's classes.
func (e Element) HasClass(class string) bool {
	return e.sel != nil && e.sel.HasClass(class)
}

// Text returns the concatenation of all descendant text nodes, unmodified.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return e.sel.Text()
}

// Children returns the child elements in order.
func (e Element) Children() []Element {
	if e.sel == nil {
		return nil
	}
	return elements(e.sel.Children())
}

// Ancestors returns the enclosing elements, nearest first.
func (e Element) Ancestors() []Element {
	if e.sel == nil {
		return nil
	}
	return elements(e.sel.Parents())
}

// HTML returns the outer HTML of the element.
func (e Element) HTML() string {
	if e.sel == nil {
		return ""
	}
	out, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return out
}

func elements(s *goquery.Selection) []Element {
	out := make([]Element, 0, s.Length())
	s.Each(func(_ int, el *goquery.Selection) {
		out = append(out, Element{sel: el})
	})
	return out
}

// matchFunc adapts a node predicate to goquery.Matcher.
type matchFunc func(*html.Node) bool

func (f matchFunc) Match(n *html.Node) bool { return f(n) }

// MatchAll returns n and its descendants that match, in pre-order.
func (f matchFunc) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if f(cur) {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (f matchFunc) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if f(n) {
			out = append(out, n)
		}
	}
	return out
}

func isElement(n *html.Node) bool {
	return n.Type == html.ElementNode
}

func newTagSet(tags []string) matchFunc {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := set[n.Data]
		return ok
	}
}
