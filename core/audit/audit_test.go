package audit

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

func messages(issues []Issue) []string {
	m, _ := Split(issues)
	return m
}

func TestAudit_CleanDocumentFallsBack(t *testing.T) {
	for _, in := range []string{"", `<main><h1>Title</h1><p>Fine.</p></main>`} {
		issues := New().Audit(document.Parse(in))
		want := []Issue{{Message: NoIssuesMessage, Suggestion: NoIssuesSuggestion}}
		if !reflect.DeepEqual(issues, want) {
			t.Fatalf("Audit(%q): expected fallback pair, got %+v", in, issues)
		}
	}
}

func TestMissingAltText_AggregateCount(t *testing.T) {
	doc := document.Parse(`<img src="a"><img src="b" alt=""><img src="c"><img src="d" alt="Dog"><img src="e">`)
	got := MissingAltText(doc)
	if len(got) != 1 {
		t.Fatalf("expected one aggregate issue, got %d", len(got))
	}
	if got[0].Message != "3 images lack alt text" {
		t.Fatalf("unexpected message %q", got[0].Message)
	}
	if MissingAltText(document.Parse(`<img alt="x">`)) != nil {
		t.Fatal("expected no issue when every image has alt")
	}
}

func TestHeadingHierarchy(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{"h1 h3", `<h1>a</h1><h3>b</h3>`, []string{"Heading hierarchy skips from H1 to H3"}},
		{"h1 h2 h3", `<h1>a</h1><h2>b</h2><h3>c</h3>`, nil},
		{"starts at h2", `<h2>a</h2>`, []string{"Heading hierarchy skips from H0 to H2"}},
		{"going back up is fine", `<h1>a</h1><h2>b</h2><h3>c</h3><h2>d</h2><h3>e</h3>`, nil},
		{
			"previous level updates after a skip",
			`<h1>a</h1><h4>b</h4><h6>c</h6><h2>d</h2><h4>e</h4>`,
			[]string{
				"Heading hierarchy skips from H1 to H4",
				"Heading hierarchy skips from H4 to H6",
				"Heading hierarchy skips from H2 to H4",
			},
		},
		{"nested order", `<div><h1>a</h1></div><section><div><h3>b</h3></div></section>`, []string{"Heading hierarchy skips from H1 to H3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeadingHierarchy(document.Parse(tt.html))
			if !reflect.DeepEqual(messages(got), messagesOrNil(tt.want)) {
				t.Fatalf("expected %v, got %v", tt.want, messages(got))
			}
		})
	}
}

func messagesOrNil(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}

func TestUnlabeledFormFields(t *testing.T) {
	doc := document.Parse(`
<form>
  <label for="email">Email</label><input id="email" name="email">
  <label>Wrapped <input name="wrapped"></label>
  <input aria-label="Search" name="q">
  <input aria-labelledby="lbl" name="lbl">
  <input name="first">
  <select id="country"></select>
  <textarea></textarea>
  <input name="" id="fallback-id">
</form>`)

	want := []string{
		"Form element missing label: first",
		"Form element missing label: country",
		"Form element missing label: unnamed element",
		"Form element missing label: fallback-id",
	}
	got := UnlabeledFormFields(doc)
	if !reflect.DeepEqual(messages(got), want) {
		t.Fatalf("expected %v, got %v", want, messages(got))
	}
	for _, is := range got {
		if is.Suggestion != "Add labels or aria-labels to all form elements" {
			t.Fatalf("unexpected suggestion %q", is.Suggestion)
		}
	}
}

func TestInsufficientContrast_SingleAggregate(t *testing.T) {
	doc := document.Parse(`
<p style="background-color:#fff;color:#eee">a</p>
<p style="background-color:#fff;color:#ddd">b</p>
<p style="background-color:#fff;color:#000">c</p>`)
	got := InsufficientContrast(doc)
	if len(got) != 1 || !strings.Contains(got[0].Message, "insufficient color contrast") {
		t.Fatalf("expected one aggregate contrast issue, got %+v", got)
	}

	ok := document.Parse(`<p style="background-color:#FFFFFF;color:#767676">AA</p>`)
	if InsufficientContrast(ok) != nil {
		t.Fatal("expected #767676 on white to pass")
	}
}

func TestUnnamedInteractive(t *testing.T) {
	doc := document.Parse(`
<button>Save</button>
<button>   </button>
<a href="/x"></a>
<a href="/y" aria-label="Home"></a>
<div role="button"></div>
<button role="button"></button>
<span role="link"></span>`)
	got := UnnamedInteractive(doc)
	if len(got) != 4 {
		t.Fatalf("expected 4 unnamed interactive elements, got %d: %v", len(got), messages(got))
	}
}

func TestAudit_IssuesAndSuggestionsAligned(t *testing.T) {
	doc := document.Parse(`<h1>a</h1><h3>b</h3><img src="x"><input><button></button>
<p style="background:#fff;color:#fafafa">faint</p>`)
	issues := New().Audit(doc)
	msgs, sugg := Split(issues)
	if len(msgs) != len(sugg) || len(msgs) != 5 {
		t.Fatalf("expected 5 aligned pairs, got %d/%d", len(msgs), len(sugg))
	}
	wantOrder := []string{"lack alt text", "Heading hierarchy", "Form element", "contrast", "Interactive"}
	for i, w := range wantOrder {
		if !strings.Contains(msgs[i], w) {
			t.Fatalf("issue %d: expected %q in %q", i, w, msgs[i])
		}
	}
}

func TestWithRules(t *testing.T) {
	doc := document.Parse(`<img src="x">`)
	if got := WithRules(HeadingHierarchy).Audit(doc); got[0].Message != NoIssuesMessage {
		t.Fatalf("expected only the heading rule to run, got %+v", got)
	}
}
