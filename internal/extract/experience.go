package extract

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/resume-scorer/internal/criteria"
)

const (
	labelPhrase    = "phrase"
	labelRange     = "range"
	labelOpenRange = "open range"
)

var (
	yearsPhrase = regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)

	yearRange = regexp.MustCompile(`\b(?:` + monthWord + `\s*)?((?:19|20)\d{2})\s*(?:-|to|until)\s*(?:` + monthWord + `\s*)?((?:19|20)\d{2}|present|current|now|today|date)\b`)
)

const monthWord = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`

type experience struct {
	params criteria.ExperienceParams
}

type span struct {
	from, to int
}

// Extract counts explicit "N years" phrases and closed year ranges. Ranges
// ending in "present" are recorded but not counted so the result does not
// depend on the current date.
func (e experience) Extract(text string) Evidence {
	ev := Evidence{Expected: e.params.TargetYears}
	if text == "" {
		return ev
	}

	longest := 0.0
	for _, loc := range yearsPhrase.FindAllStringSubmatchIndex(text, -1) {
		years, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil || years <= 0 || years > e.params.MaxYears {
			continue
		}
		ev.Matches = append(ev.Matches, Match{Label: labelPhrase, Text: text[loc[0]:loc[1]], Offset: loc[0], Count: 1})
		longest = max(longest, years)
	}

	var spans []span
	for _, loc := range yearRange.FindAllStringSubmatchIndex(text, -1) {
		from, _ := strconv.Atoi(text[loc[2]:loc[3]])
		end := text[loc[4]:loc[5]]

		to, err := strconv.Atoi(end)
		if err != nil {
			ev.Matches = append(ev.Matches, Match{Label: labelOpenRange, Text: text[loc[0]:loc[1]], Offset: loc[0], Count: 1})
			continue
		}
		if to < from {
			continue
		}
		ev.Matches = append(ev.Matches, Match{Label: labelRange, Text: text[loc[0]:loc[1]], Offset: loc[0], Count: 1})
		spans = append(spans, span{from: from, to: to})
	}

	ranged := float64(mergedYears(spans))
	ev.Found = max(longest, ranged)

	if len(ev.Matches) > 0 {
		ev.Details = map[string]string{
			"longest phrase": formatYears(longest),
			"ranges":         formatYears(ranged),
		}
	}

	// Matches were collected in two passes; keep them in text order.
	slices.SortStableFunc(ev.Matches, func(a, b Match) int {
		return a.Offset - b.Offset
	})

	return ev
}

// SubScore is min(1, years / target years).
func (e experience) SubScore(ev Evidence) float64 {
	return ratio(ev.Found, ev.Expected)
}

// mergedYears returns the number of years covered by the union of spans.
func mergedYears(spans []span) int {
	if len(spans) == 0 {
		return 0
	}

	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b span) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})

	total := 0
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if s.from <= cur.to {
			cur.to = max(cur.to, s.to)
			continue
		}
		total += cur.to - cur.from
		cur = s
	}
	total += cur.to - cur.from

	return total
}

func formatYears(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}
