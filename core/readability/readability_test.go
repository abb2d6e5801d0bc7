package readability

import (
	"math"
	"testing"
)

func TestLabel_Boundaries(t *testing.T) {
	tests := []struct {
		grade float64
		want  string
	}{
		{-3.2, LevelSixth},
		{6.0, LevelSixth},
		{6.1, LevelEighth},
		{8.0, LevelEighth},
		{8.01, LevelTenth},
		{10.0, LevelTenth},
		{12.0, LevelTwelfth},
		{12.5, LevelCollege},
	}
	for _, tt := range tests {
		if got := Label(tt.grade); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}

func TestScore_Counts(t *testing.T) {
	m := Score("The cat sat. The dog ran!")
	if m.Sentences != 2 || m.Words != 6 || m.Syllables != 6 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	want := 0.39*3 + 11.8*1 - 15.59
	if math.Abs(m.Grade-want) > 1e-9 {
		t.Fatalf("expected grade %v, got %v", want, m.Grade)
	}
	if m.Grade >= 0 {
		t.Fatalf("expected negative grade for very simple text, got %v", m.Grade)
	}
	if m.Label != LevelSixth {
		t.Fatalf("expected %q, got %q", LevelSixth, m.Label)
	}
}

func TestScore_College(t *testing.T) {
	text := "Internationalization necessitates comprehensive organizational considerations."
	m := Score(text)
	if m.Syllables != 29 {
		t.Fatalf("expected 29 syllables, got %d", m.Syllables)
	}
	if m.Label != LevelCollege {
		t.Fatalf("expected %q, got %q (grade %v)", LevelCollege, m.Label, m.Grade)
	}
}

func TestScore_Degenerate(t *testing.T) {
	for _, text := range []string{"", "   ", "...!?", "\n\t"} {
		m := Score(text)
		if m.Scored {
			t.Fatalf("Score(%q): expected unscored metrics", text)
		}
		if m.Label != LevelSixth {
			t.Fatalf("Score(%q): expected lowest label, got %q", text, m.Label)
		}
		if math.IsNaN(m.Grade) || math.IsInf(m.Grade, 0) {
			t.Fatalf("Score(%q): grade must be finite", text)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	tests := map[string]int{
		"rhythm":    1,
		"Queue":     1,
		"beautiful": 3,
		"xyz":       1,
		"bcd":       0,
		"AEIOU":     1,
	}
	for word, want := range tests {
		if got := countSyllables(word); got != want {
			t.Errorf("countSyllables(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestCountSentences_DropsEmptyFragments(t *testing.T) {
	tests := map[string]int{
		"One. Two!! Three?": 3,
		"Really? ! Yes":     3,
		"...!?":             0,
		"Trailing. ":        2,
	}
	for text, want := range tests {
		if got := countSentences(text); got != want {
			t.Errorf("countSentences(%q) = %d, want %d", text, got, want)
		}
	}
	if got := countSentences("no terminator"); got != 1 {
		t.Fatalf("expected 1 sentence, got %d", got)
	}
}
