package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// replacer maps typographic punctuation left behind by PDF text extraction to
// plain ASCII. Runs after NFKC, so only characters NFKC keeps are listed.
var replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u201b", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u201f", `"`,
	"\u2010", "-", "\u2011", "-", "\u2012", "-", "\u2013", "-", "\u2014", "-", "\u2015", "-", "\u2212", "-",
	"\u2022", " ", "\u25cf", " ", "\u25aa", " ", "\u25e6", " ", "\u2023", " ", "\u2043", " ",
	"\u00ad", "", "\u200b", "", "\u200c", "", "\u200d", "", "\u2060", "", "\ufeff", "",
)

// Text returns the canonical form of raw extracted text: valid UTF-8, NFKC
// (ligatures expanded), ASCII punctuation, lowercase, single spaces, trimmed.
// Empty input returns an empty string. Text(Text(s)) == Text(s).
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToValidUTF8(raw, " ")
	s = norm.NFKC.String(s)
	s = replacer.Replace(s)
	s = strings.ToLower(s)
	// lowercasing can leave sequences NFKC would fold again
	s = norm.NFKC.String(s)

	return strings.Join(strings.FieldsFunc(s, isSeparator), " ")
}

// WordCount counts space separated tokens that carry at least one letter or digit.
func WordCount(text string) int {
	count := 0
	for _, field := range strings.Fields(text) {
		if strings.IndexFunc(field, isWordRune) >= 0 {
			count++
		}
	}
	return count
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
