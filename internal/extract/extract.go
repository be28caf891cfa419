// Package extract holds the feature detectors of the scorer. Every detector
// is a pure function over normalized text and never fails: missing signal is
// reported as evidence without matches and a zero sub-score.
package extract

import (
	"fmt"
	"math"

	"github.com/spigell/resume-scorer/internal/criteria"
)

// Match is one piece of matched signal.
type Match struct {
	// Label names what was matched: a keyword, a section, a pattern name.
	Label string `json:"label" yaml:"label"`
	// Text is the matched substring of the normalized text.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// Offset is the byte offset of the first occurrence.
	Offset int `json:"offset" yaml:"offset"`
	Count  int `json:"count" yaml:"count"`
}

// Evidence is what an extractor found for one criterion.
type Evidence struct {
	Matches  []Match           `json:"matches,omitempty" yaml:"matches,omitempty"`
	Found    float64           `json:"found" yaml:"found"`
	Expected float64           `json:"expected" yaml:"expected"`
	Missing  []string          `json:"missing,omitempty" yaml:"missing,omitempty"`
	Hints    []string          `json:"hints,omitempty" yaml:"hints,omitempty"`
	Details  map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Empty reports whether no signal was matched.
func (e Evidence) Empty() bool {
	return len(e.Matches) == 0
}

// Extractor detects one category of signal.
type Extractor interface {
	// Extract scans normalized text. It must be safe for concurrent use.
	Extract(text string) Evidence
	// SubScore maps evidence to [0,1].
	SubScore(ev Evidence) float64
}

// New returns the extractor for the criterion kind. The criterion is expected
// to come from a validated criteria.Set.
func New(c criteria.Criterion) (Extractor, error) {
	switch c.Kind {
	case criteria.KindKeywords:
		if c.Keywords != nil {
			return keywords{params: *c.Keywords}, nil
		}
	case criteria.KindSections:
		if c.Sections != nil {
			return sections{params: *c.Sections}, nil
		}
	case criteria.KindContact:
		if c.Contact != nil {
			return contact{params: *c.Contact}, nil
		}
	case criteria.KindLength:
		if c.Length != nil {
			return length{params: *c.Length}, nil
		}
	case criteria.KindExperience:
		if c.Experience != nil {
			return experience{params: *c.Experience}, nil
		}
	case criteria.KindEducation:
		if c.Education != nil {
			return education{params: *c.Education}, nil
		}
	default:
		return nil, fmt.Errorf("criterion %q: no extractor for kind %q", c.ID, c.Kind)
	}

	return nil, fmt.Errorf("criterion %q: %s parameters are missing", c.ID, c.Kind)
}

// ratio returns found/expected limited to [0,1]; a non-positive expectation scores 0.
func ratio(found, expected float64) float64 {
	if expected <= 0 || math.IsNaN(found) || math.IsNaN(expected) {
		return 0
	}
	return clamp01(found / expected)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
