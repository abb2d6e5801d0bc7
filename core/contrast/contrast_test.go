package contrast

import (
	"math"
	"testing"

	"github.com/gaurav-prasanna/accesslens/core/document"
)

func TestRatio_KnownPairs(t *testing.T) {
	white := RGB{255, 255, 255}
	black := RGB{0, 0, 0}
	grey := RGB{0x76, 0x76, 0x76}

	if got := Ratio(white, black); math.Abs(got-21) > 1e-9 {
		t.Fatalf("white/black: expected 21, got %v", got)
	}
	if got := Ratio(black, white); math.Abs(got-21) > 1e-9 {
		t.Fatalf("ratio must be symmetric, got %v", got)
	}
	if got := Ratio(white, grey); got < 4.5 || got > 4.6 {
		t.Fatalf("white/#767676: expected ~4.54, got %v", got)
	}
	if got := Ratio(grey, grey); got != 1 {
		t.Fatalf("identical colors: expected 1, got %v", got)
	}
}

func TestRatio_Bounds(t *testing.T) {
	steps := []uint8{0, 17, 64, 118, 128, 200, 255}
	for _, a := range steps {
		for _, b := range steps {
			r := Ratio(RGB{a, b, a}, RGB{b, a, 255 - a})
			if r < 1 || r > 21 {
				t.Fatalf("ratio out of range: %v", r)
			}
		}
	}
}

func TestGrade(t *testing.T) {
	tests := map[float64]string{21: "AAA", 7: "AAA", 6.9: "AA", 4.5: "AA", 4.4: "fails WCAG", 1: "fails WCAG"}
	for ratio, want := range tests {
		if got := Grade(ratio); got != want {
			t.Errorf("Grade(%v) = %q, want %q", ratio, got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#FFFFFF", RGB{255, 255, 255}, true},
		{"#767676", RGB{0x76, 0x76, 0x76}, true},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}, true},
		{"#abcf", RGB{0xaa, 0xbb, 0xcc}, true},
		{"#abc8", RGB{}, false},
		{"#11223380", RGB{}, false},
		{"#112233ff", RGB{0x11, 0x22, 0x33}, true},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}, true},
		{"RGB(100%, 0%, 50%)", RGB{255, 0, 128}, true},
		{"rgba(1,2,3,1)", RGB{1, 2, 3}, true},
		{"rgba(1,2,3,0.5)", RGB{}, false},
		{"rgb(1 2 3 / 100%)", RGB{1, 2, 3}, true},
		{"rgb(1 2 3 / 0.2)", RGB{}, false},
		{"Navy", RGB{0, 0, 128}, true},
		{"transparent", RGB{}, false},
		{"inherit", RGB{}, false},
		{"#12", RGB{}, false},
		{"#gggggg", RGB{}, false},
		{"rgb(1,2)", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{0x76, 0x0a, 0xff}).Hex(); got != "#760aff" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve(t *testing.T) {
	doc := document.Parse(`
<p id="a" style="background-color: #fff; color: #000">a</p>
<p id="b" style="background: url(x.png) no-repeat #000000; color: white">b</p>
<p id="c" style="color: red; color: blue">c</p>
<p id="d" style="color: red !important; color: blue">d</p>
<table><tr><td id="e" bgcolor="#ffffff"><font id="f" color="#000000">f</font></td></tr></table>
<p id="g" style="color: transparent" color="black">g</p>
<p id="h" style="background-color: ;;; color">h</p>
<p id="i" style="color:#000;;background:#fff">i</p>
<p id="j" style="color:#000; ;background:#fff">j</p>
<p id="k" style="background-image: url('a;b.png'); nonsense; background-color: #fff; color: #000">k</p>`)

	byID := func(id string) Style {
		el, ok := doc.First("#" + id)
		if !ok {
			t.Fatalf("missing #%s", id)
		}
		return Resolve(el)
	}

	if s := byID("a"); !s.Complete() || s.Background != (RGB{255, 255, 255}) || s.Foreground != (RGB{}) {
		t.Fatalf("#a: unexpected style %+v", s)
	}
	if s := byID("b"); !s.Complete() || s.Background != (RGB{}) {
		t.Fatalf("#b: expected shorthand background, got %+v", s)
	}
	if s := byID("c"); s.Foreground != (RGB{0, 0, 255}) || s.HasBackground {
		t.Fatalf("#c: expected later declaration to win, got %+v", s)
	}
	if s := byID("d"); s.Foreground != (RGB{255, 0, 0}) {
		t.Fatalf("#d: expected !important to win, got %+v", s)
	}
	if s := byID("e"); !s.HasBackground || s.HasForeground {
		t.Fatalf("#e: expected bgcolor only, got %+v", s)
	}
	if s := byID("f"); !s.HasForeground || s.HasBackground {
		t.Fatalf("#f: colors must not be inherited, got %+v", s)
	}
	if s := byID("g"); !s.HasForeground || s.Foreground != (RGB{}) {
		t.Fatalf("#g: expected attribute fallback after unresolved inline color, got %+v", s)
	}
	if s := byID("h"); s.HasBackground || s.HasForeground {
		t.Fatalf("#h: expected malformed style to resolve nothing, got %+v", s)
	}
	for _, id := range []string{"i", "j", "k"} {
		s := byID(id)
		if !s.Complete() || s.Background != (RGB{255, 255, 255}) || s.Foreground != (RGB{}) {
			t.Fatalf("#%s: expected declarations around the bad entry to survive, got %+v", id, s)
		}
	}
}

func TestSplitDeclarations(t *testing.T) {
	got := splitDeclarations(` color:#000;; ; background: url("a;b.png") #fff ;font: 12px/1 "x;y"`)
	want := []string{"color:#000", `background: url("a;b.png") #fff`, `font: 12px/1 "x;y"`}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("part %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		ratio   *float64
		failing int
	}{
		{
			name:  "no colors",
			html:  `<p>plain</p><p style="color:#000">half</p>`,
			ratio: nil,
		},
		{
			name:  "black on white",
			html:  `<p style="background-color:#FFFFFF;color:#000000">x</p>`,
			ratio: ptr(21.0),
		},
		{
			name:  "AA boundary grey",
			html:  `<p style="background-color:#FFFFFF;color:#767676">x</p>`,
			ratio: ptr(4.5),
		},
		{
			name: "worst of several",
			html: `<p style="background:#fff;color:#000">a</p>
<p style="background:#fff;color:#999">b</p>
<p style="background:#fff;color:#aaa">c</p>`,
			ratio:   ptr(2.3),
			failing: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(document.Parse(tt.html))
			got := res.Ratio()
			switch {
			case tt.ratio == nil && got != nil:
				t.Fatalf("expected no ratio, got %v", *got)
			case tt.ratio != nil && got == nil:
				t.Fatalf("expected ratio %v, got none", *tt.ratio)
			case tt.ratio != nil && *got != *tt.ratio:
				t.Fatalf("expected ratio %v, got %v", *tt.ratio, *got)
			}
			if res.Failing != tt.failing {
				t.Fatalf("expected %d failing samples, got %d", tt.failing, res.Failing)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
