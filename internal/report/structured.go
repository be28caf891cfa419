package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/profile"
	"github.com/spigell/resume-scorer/internal/scoring"
)

// summary is the non-verbose view. The verbose view starts with the same
// fields.
type summary struct {
	Document string         `json:"document" yaml:"document"`
	Total    float64        `json:"total" yaml:"total"`
	Scale    criteria.Scale `json:"scale" yaml:"scale"`
}

type detailed struct {
	Document string          `json:"document" yaml:"document"`
	Total    float64         `json:"total" yaml:"total"`
	Scale    criteria.Scale  `json:"scale" yaml:"scale"`
	Pages    int             `json:"pages" yaml:"pages"`
	Words    int             `json:"words" yaml:"words"`
	Criteria []criterionView `json:"criteria" yaml:"criteria"`
	Profile  profile.Profile `json:"profile" yaml:"profile"`
}

type criterionView struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Kind         criteria.Kind    `json:"kind" yaml:"kind"`
	Weight       float64          `json:"weight" yaml:"weight"`
	SubScore     float64          `json:"sub_score" yaml:"sub_score"`
	Contribution float64          `json:"contribution" yaml:"contribution"`
	Matched      bool             `json:"matched" yaml:"matched"`
	Evidence     extract.Evidence `json:"evidence" yaml:"evidence"`
}

// view projects the result onto the structure written by json and yaml.
func view(r *scoring.Result, verbose bool) any {
	s := summary{
		Document: r.Document,
		Total:    round2(r.Total),
		Scale:    r.Scale,
	}
	if !verbose {
		return s
	}

	d := detailed{
		Document: s.Document,
		Total:    s.Total,
		Scale:    s.Scale,
		Pages:    r.Pages,
		Words:    r.Words,
		Criteria: make([]criterionView, 0, len(r.Criteria)),
		Profile:  r.Profile,
	}
	for _, c := range r.Criteria {
		d.Criteria = append(d.Criteria, criterionView{
			ID:           c.ID,
			Name:         c.Name,
			Kind:         c.Kind,
			Weight:       c.Weight,
			SubScore:     round2(c.SubScore),
			Contribution: round2(c.Contribution),
			Matched:      !c.Evidence.Empty(),
			Evidence:     c.Evidence,
		})
	}
	return d
}

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (f *JSON) Name() string {
	return "json"
}

func (f *JSON) Format(r *scoring.Result, opts Options) (string, error) {
	out, err := json.MarshalIndent(view(r, opts.Verbose), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling json report: %w", err)
	}
	return string(out) + "\n", nil
}

type YAML struct{}

func NewYAML() *YAML {
	return &YAML{}
}

func (f *YAML) Name() string {
	return "yaml"
}

func (f *YAML) Format(r *scoring.Result, opts Options) (string, error) {
	out, err := yaml.Marshal(view(r, opts.Verbose))
	if err != nil {
		return "", fmt.Errorf("marshaling yaml report: %w", err)
	}
	return string(out), nil
}
