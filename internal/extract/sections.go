package extract

import "github.com/spigell/resume-scorer/internal/criteria"

type sections struct {
	params criteria.SectionParams
}

// Extract looks for each expected section under any of its aliases. The first
// alias in configuration order that matches is recorded.
func (s sections) Extract(text string) Evidence {
	ev := Evidence{}

	for _, section := range s.params.Sections {
		ev.Expected += section.Points

		found := false
		for _, alias := range section.Aliases {
			if m, ok := termMatch(text, section.Name, alias); ok {
				ev.Matches = append(ev.Matches, m)
				ev.Found += section.Points
				found = true
				break
			}
		}

		if !found {
			ev.Missing = append(ev.Missing, section.Name)
			if section.Hint != "" {
				ev.Hints = append(ev.Hints, section.Hint)
			}
		}
	}

	return ev
}

// SubScore is the share of section points found.
func (s sections) SubScore(ev Evidence) float64 {
	return ratio(ev.Found, ev.Expected)
}
