// Package profile derives a descriptive candidate profile from resume text.
// The profile is informational and never feeds the score.
package profile

import (
	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/extract"
)

type Level string

const (
	LevelUnknown      Level = "n/a"
	LevelFresher      Level = "fresher"
	LevelIntermediate Level = "intermediate"
	LevelExperienced  Level = "experienced"
)

type Profile struct {
	// Field is the configured career field with the most distinct keyword
	// hits. Empty when no field keyword is present.
	Field             string   `json:"field,omitempty" yaml:"field,omitempty"`
	FieldMatches      []string `json:"field_matches,omitempty" yaml:"field_matches,omitempty"`
	RecommendedSkills []string `json:"recommended_skills,omitempty" yaml:"recommended_skills,omitempty"`
	Level             Level    `json:"level" yaml:"level"`
}

// Build profiles normalized text. Ties between fields go to the one listed
// first in the configuration.
func Build(text string, pages int, vocabulary criteria.Profile) Profile {
	p := Profile{Level: level(text, pages, vocabulary)}

	for _, field := range vocabulary.Fields {
		var found, missing []string
		for _, kw := range field.Keywords {
			if extract.ContainsTerm(text, kw) {
				found = append(found, kw)
			} else {
				missing = append(missing, kw)
			}
		}

		if len(found) > len(p.FieldMatches) {
			p.Field = field.Name
			p.FieldMatches = found
			p.RecommendedSkills = missing
		}
	}

	return p
}

func level(text string, pages int, vocabulary criteria.Profile) Level {
	switch {
	case pages < 1:
		return LevelUnknown
	case containsAny(text, vocabulary.InternshipTerms):
		return LevelIntermediate
	case containsAny(text, vocabulary.ExperienceTerms):
		return LevelExperienced
	default:
		return LevelFresher
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if extract.ContainsTerm(text, t) {
			return true
		}
	}
	return false
}
