package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/resume-scorer/internal/criteria"
)

var (
	emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}`)

	// North American numbers with a bracketed area code or consistent "-" or
	// "." separators, or any number written with a leading "+" country code.
	phonePattern = regexp.MustCompile(strings.Join([]string{
		`(?:\+1[\s.-]?)?\([2-9]\d{2}\)[\s.-]?\d{3}[\s.-]?\d{4}\b`,
		`\b[2-9]\d{2}-\d{3}-\d{4}\b`,
		`\b[2-9]\d{2}\.\d{3}\.\d{4}\b`,
		`\+\d{1,3}(?:[\s.-]?\d{2,5}){2,4}\b`,
	}, "|"))
)

// minPhoneDigits is the shortest number accepted as a phone.
const minPhoneDigits = 8

type contact struct {
	params criteria.ContactParams
}

func (c contact) Extract(text string) Evidence {
	ev := Evidence{Expected: 1}
	if text == "" {
		return ev
	}

	for _, name := range c.params.Patterns {
		switch name {
		case criteria.PatternEmail:
			ev.Matches = append(ev.Matches, patternMatches(text, name, emailPattern, nil)...)
		case criteria.PatternPhone:
			ev.Matches = append(ev.Matches, patternMatches(text, name, phonePattern, isPhone)...)
		}
	}

	if len(ev.Matches) > 0 {
		ev.Found = 1
	}

	return ev
}

// SubScore is binary: any enabled pattern matching gives a full score.
func (c contact) SubScore(ev Evidence) float64 {
	if ev.Found > 0 {
		return 1
	}
	return 0
}

// patternMatches groups the hits of re by matched text, keeping the order of
// first appearance. Hits rejected by accept are dropped.
func patternMatches(text, label string, re *regexp.Regexp, accept func(text string, start, end int) bool) []Match {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	index := make(map[string]int, len(locs))
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		if accept != nil && !accept(text, loc[0], loc[1]) {
			continue
		}
		s := text[loc[0]:loc[1]]
		if i, ok := index[s]; ok {
			matches[i].Count++
			continue
		}
		index[s] = len(matches)
		matches = append(matches, Match{Label: label, Text: s, Offset: loc[0], Count: 1})
	}

	if len(matches) == 0 {
		return nil
	}
	return matches
}

// isPhone rejects number runs that only look like phones: a "+" glued to the
// previous token ("c++11"), percentages and numbers shorter than minPhoneDigits.
func isPhone(text string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if prev == '+' || prev == '_' || unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return false
		}
	}
	if end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if next == '%' || unicode.IsLetter(next) || unicode.IsDigit(next) {
			return false
		}
	}

	digits := 0
	for _, r := range text[start:end] {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
