package extract

import "github.com/spigell/resume-scorer/internal/criteria"

type education struct {
	params criteria.EducationParams
}

// Extract records the first matching marker of every level. Found is the
// score of the best level present.
func (e education) Extract(text string) Evidence {
	ev := Evidence{Expected: 1}
	if text == "" {
		return ev
	}

	best := ""
	for _, level := range e.params.Levels {
		for _, marker := range level.Markers {
			m, ok := termMatch(text, level.Name, marker)
			if !ok {
				continue
			}
			ev.Matches = append(ev.Matches, m)
			if best == "" || level.Score > ev.Found {
				ev.Found = level.Score
				best = level.Name
			}
			break
		}
	}

	if best != "" {
		ev.Details = map[string]string{"highest level": best}
	}

	return ev
}

func (e education) SubScore(ev Evidence) float64 {
	return clamp01(ev.Found)
}
