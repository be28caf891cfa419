package extract

import "github.com/spigell/resume-scorer/internal/criteria"

type keywords struct {
	params criteria.KeywordParams
}

func (k keywords) Extract(text string) Evidence {
	ev := Evidence{Expected: float64(k.params.Expected)}
	if text == "" {
		return ev
	}

	for _, kw := range k.params.Keywords {
		if m, ok := termMatch(text, kw, kw); ok {
			ev.Matches = append(ev.Matches, m)
		}
	}
	ev.Found = float64(len(ev.Matches))

	return ev
}

// SubScore is min(1, distinct keywords found / expected).
func (k keywords) SubScore(ev Evidence) float64 {
	return ratio(ev.Found, ev.Expected)
}
