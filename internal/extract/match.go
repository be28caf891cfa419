package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindTerm returns the byte offsets of every non-overlapping whole-word
// occurrence of term in text. A word boundary is any position not surrounded
// by a letter or digit on the outer side of the term.
func FindTerm(text, term string) []int {
	if term == "" || len(term) > len(text) {
		return nil
	}

	var offsets []int
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], term)
		if i < 0 {
			break
		}
		i += start
		end := i + len(term)

		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			offsets = append(offsets, i)
			start = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}

	return offsets
}

// ContainsTerm reports whether term occurs in text as a whole word.
func ContainsTerm(text, term string) bool {
	return len(FindTerm(text, term)) > 0
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// termMatch looks the term up and converts the hit into a Match.
func termMatch(text, label, term string) (Match, bool) {
	offsets := FindTerm(text, term)
	if len(offsets) == 0 {
		return Match{}, false
	}
	return Match{Label: label, Text: term, Offset: offsets[0], Count: len(offsets)}, true
}
