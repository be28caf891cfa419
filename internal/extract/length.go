package extract

import (
	"fmt"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/normalize"
)

const labelWords = "words"

type length struct {
	params criteria.LengthParams
}

func (l length) Extract(text string) Evidence {
	words := normalize.WordCount(text)
	if words == 0 {
		return Evidence{}
	}

	return Evidence{
		Matches: []Match{{Label: labelWords, Count: words}},
		Found:   float64(words),
		Details: map[string]string{
			"ideal": fmt.Sprintf("%d-%d words", l.params.IdealMinWords, l.params.IdealMaxWords),
		},
	}
}

// SubScore rises linearly from min_words to ideal_min_words, stays at 1 up to
// ideal_max_words and falls linearly to 0 at max_words.
func (l length) SubScore(ev Evidence) float64 {
	w := ev.Found
	if w <= 0 {
		return 0
	}

	p := l.params
	minW, idealMin, idealMax, maxW := float64(p.MinWords), float64(p.IdealMinWords), float64(p.IdealMaxWords), float64(p.MaxWords)

	switch {
	case w >= idealMin && w <= idealMax:
		return 1
	case w < idealMin:
		if w <= minW {
			return 0
		}
		return clamp01((w - minW) / (idealMin - minW))
	default:
		if w >= maxW {
			return 0
		}
		return clamp01((maxW - w) / (maxW - idealMax))
	}
}
