// Package readability estimates the school grade needed to read a text,
// using the Flesch-Kincaid grade formula over heuristic sentence, word and
// syllable counts.
package readability

import (
	"math"
	"regexp"
	"strings"
)

// Reading level labels, lowest to highest.
const (
	LevelSixth   = "6th Grade or below"
	LevelEighth  = "8th Grade"
	LevelTenth   = "10th Grade"
	LevelTwelfth = "12th Grade"
	LevelCollege = "College Level"
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Metrics are the raw counts behind a grade estimate.
type Metrics struct {
	Sentences int
	Words     int
	Syllables int
	// Grade is meaningful only when Scored is true.
	Grade  float64
	Scored bool
	Label  string
}

// Score computes the metrics for text.
func Score(text string) Metrics {
	m := Metrics{
		Sentences: countSentences(text),
		Label:     LevelSixth,
	}
	words := strings.Fields(text)
	m.Words = len(words)
	for _, w := range words {
		m.Syllables += countSyllables(w)
	}

	if m.Sentences == 0 || m.Words == 0 {
		return m
	}
	grade := 0.39*(float64(m.Words)/float64(m.Sentences)) +
		11.8*(float64(m.Syllables)/float64(m.Words)) - 15.59
	if math.IsNaN(grade) || math.IsInf(grade, 0) {
		return m
	}
	m.Grade = grade
	m.Scored = true
	m.Label = Label(grade)
	return m
}

// Level returns only the label for text.
func Level(text string) string {
	return Score(text).Label
}

// Label maps a grade to its reading level. Each bound is inclusive.
func Label(grade float64) string {
	switch {
	case grade <= 6:
		return LevelSixth
	case grade <= 8:
		return LevelEighth
	case grade <= 10:
		return LevelTenth
	case grade <= 12:
		return LevelTwelfth
	default:
		return LevelCollege
	}
}

func countSentences(text string) int {
	n := 0
	for _, frag := range sentenceBreak.Split(text, -1) {
		if frag != "" {
			n++
		}
	}
	return n
}

// countSyllables counts maximal runs of vowels (y included) in word.
func countSyllables(word string) int {
	n := 0
	inRun := false
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			if !inRun {
				n++
			}
			inRun = true
			continue
		}
		inRun = false
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
