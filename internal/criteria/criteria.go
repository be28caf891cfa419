package criteria

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// RequiredWeightSum is the value every criteria set's weights must add up to.
const RequiredWeightSum = 1.0

const weightTolerance = 1e-6

// ErrInvalid marks every configuration defect found while loading criteria.
var ErrInvalid = errors.New("invalid criteria configuration")

// Kind tags the detection policy of a criterion.
type Kind string

const (
	KindKeywords   Kind = "keywords"
	KindSections   Kind = "sections"
	KindContact    Kind = "contact"
	KindLength     Kind = "length"
	KindExperience Kind = "experience"
	KindEducation  Kind = "education"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindKeywords, KindSections, KindContact, KindLength, KindExperience, KindEducation}
}

// Criterion is one weighted scoring rule. Exactly one of the parameter
// pointers is set and it always matches Kind.
type Criterion struct {
	ID     string
	Name   string
	Kind   Kind
	Weight float64

	Keywords   *KeywordParams
	Sections   *SectionParams
	Contact    *ContactParams
	Length     *LengthParams
	Experience *ExperienceParams
	Education  *EducationParams
}

// KeywordParams configures a skill category.
type KeywordParams struct {
	Keywords []string `mapstructure:"keywords"`
	// Expected is the number of distinct keywords that earns a full sub-score.
	// Zero means every keyword.
	Expected int `mapstructure:"expected"`
}

// Section is one canonical resume section header.
type Section struct {
	Name    string   `mapstructure:"name"`
	Aliases []string `mapstructure:"aliases"`
	Points  float64  `mapstructure:"points"`
	Hint    string   `mapstructure:"hint"`
}

type SectionParams struct {
	Sections []Section `mapstructure:"sections"`
}

const (
	PatternEmail = "email"
	PatternPhone = "phone"
)

type ContactParams struct {
	Patterns []string `mapstructure:"patterns"`
}

// LengthParams holds the word count breakpoints of the length curve.
type LengthParams struct {
	MinWords      int `mapstructure:"min_words"`
	IdealMinWords int `mapstructure:"ideal_min_words"`
	IdealMaxWords int `mapstructure:"ideal_max_words"`
	MaxWords      int `mapstructure:"max_words"`
}

type ExperienceParams struct {
	TargetYears float64 `mapstructure:"target_years"`
	// MaxYears caps single phrases; larger numbers are not experience claims.
	MaxYears float64 `mapstructure:"max_years"`
}

// EducationLevel is one tier of degree markers.
type EducationLevel struct {
	Name    string   `mapstructure:"name"`
	Markers []string `mapstructure:"markers"`
	Score   float64  `mapstructure:"score"`
}

type EducationParams struct {
	Levels []EducationLevel `mapstructure:"levels"`
}

// Scale is the output range of the total score.
type Scale struct {
	Min float64 `mapstructure:"min" json:"min" yaml:"min"`
	Max float64 `mapstructure:"max" json:"max" yaml:"max"`
}

// Clamp limits v to the scale range.
func (s Scale) Clamp(v float64) float64 {
	return math.Min(s.Max, math.Max(s.Min, v))
}

// Field is a career field used to profile the candidate.
type Field struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// Profile holds the vocabulary used for candidate profiling. It never
// contributes to the total score.
type Profile struct {
	Fields          []Field  `mapstructure:"fields"`
	InternshipTerms []string `mapstructure:"internship_terms"`
	ExperienceTerms []string `mapstructure:"experience_terms"`
}

// Set is a validated, read-only collection of criteria. A Set is never
// modified after it is built; loading another configuration yields a new Set.
type Set struct {
	criteria []Criterion
	scale    Scale
	profile  Profile
}

// Criteria returns deep copies of the criteria in configuration order.
func (s *Set) Criteria() []Criterion {
	out := make([]Criterion, len(s.criteria))
	for i, c := range s.criteria {
		out[i] = c.clone()
	}
	return out
}

func (s *Set) Len() int {
	return len(s.criteria)
}

func (s *Set) Scale() Scale {
	return s.scale
}

func (s *Set) Profile() Profile {
	return s.profile.clone()
}

// TotalWeight sums the weights in configuration order.
func (s *Set) TotalWeight() float64 {
	total := 0.0
	for _, c := range s.criteria {
		total += c.Weight
	}
	return total
}

// Find returns the criterion with the given id.
func (s *Set) Find(id string) (Criterion, bool) {
	for _, c := range s.criteria {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Criterion{}, false
}

// NewSet validates the criteria and builds a Set from them. It is the only
// way to obtain a Set, so every Set satisfies the weight invariant.
func NewSet(criteria []Criterion, scale Scale, profile Profile) (*Set, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: no criteria configured", ErrInvalid)
	}

	if scale.Min == 0 && scale.Max == 0 {
		scale = Scale{Min: 0, Max: 100}
	}
	if math.IsInf(scale.Min, 0) || math.IsInf(scale.Max, 0) {
		return nil, fmt.Errorf("%w: scale bounds must be finite, got %v..%v", ErrInvalid, scale.Min, scale.Max)
	}
	if math.IsNaN(scale.Min) || math.IsNaN(scale.Max) || scale.Max <= scale.Min {
		return nil, fmt.Errorf("%w: scale max (%v) must be greater than min (%v)", ErrInvalid, scale.Max, scale.Min)
	}

	seen := make(map[string]struct{}, len(criteria))
	built := make([]Criterion, 0, len(criteria))
	total := 0.0

	for i, c := range criteria {
		c = c.clone()
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: criterion #%d has no id", ErrInvalid, i+1)
		}
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate criterion id %q", ErrInvalid, c.ID)
		}
		seen[c.ID] = struct{}{}

		if strings.TrimSpace(c.Name) == "" {
			c.Name = c.ID
		}

		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight < 0 {
			return nil, fmt.Errorf("%w: criterion %q: weight must be a non-negative number, got %v", ErrInvalid, c.ID, c.Weight)
		}
		total += c.Weight

		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: criterion %q: %w", ErrInvalid, c.ID, err)
		}

		built = append(built, c)
	}

	if math.Abs(total-RequiredWeightSum) > weightTolerance {
		return nil, fmt.Errorf("%w: criteria weights sum to %.4f, expected %.1f", ErrInvalid, total, RequiredWeightSum)
	}

	return &Set{criteria: built, scale: scale, profile: profile.normalized()}, nil
}

// clone deep-copies the parameter blocks and their slices, so neither the
// caller's values nor the Set's are ever shared.
func (c Criterion) clone() Criterion {
	if c.Keywords != nil {
		p := *c.Keywords
		p.Keywords = slices.Clone(p.Keywords)
		c.Keywords = &p
	}
	if c.Sections != nil {
		p := *c.Sections
		p.Sections = slices.Clone(p.Sections)
		for i := range p.Sections {
			p.Sections[i].Aliases = slices.Clone(p.Sections[i].Aliases)
		}
		c.Sections = &p
	}
	if c.Contact != nil {
		p := *c.Contact
		p.Patterns = slices.Clone(p.Patterns)
		c.Contact = &p
	}
	if c.Length != nil {
		p := *c.Length
		c.Length = &p
	}
	if c.Experience != nil {
		p := *c.Experience
		c.Experience = &p
	}
	if c.Education != nil {
		p := *c.Education
		p.Levels = slices.Clone(p.Levels)
		for i := range p.Levels {
			p.Levels[i].Markers = slices.Clone(p.Levels[i].Markers)
		}
		c.Education = &p
	}
	return c
}

func (c *Criterion) validate() error {
	blocks := map[Kind]bool{
		KindKeywords:   c.Keywords != nil,
		KindSections:   c.Sections != nil,
		KindContact:    c.Contact != nil,
		KindLength:     c.Length != nil,
		KindExperience: c.Experience != nil,
		KindEducation:  c.Education != nil,
	}
	for kind, present := range blocks {
		if present && kind != c.Kind {
			return fmt.Errorf("%s parameters are set on a %q criterion", kind, c.Kind)
		}
	}

	switch c.Kind {
	case KindKeywords:
		if c.Keywords == nil {
			return errors.New("keywords parameters are required")
		}
		return c.Keywords.validate()
	case KindSections:
		if c.Sections == nil {
			return errors.New("sections parameters are required")
		}
		return c.Sections.validate()
	case KindContact:
		if c.Contact == nil {
			c.Contact = &ContactParams{}
		}
		return c.Contact.validate()
	case KindLength:
		if c.Length == nil {
			return errors.New("length parameters are required")
		}
		return c.Length.validate()
	case KindExperience:
		if c.Experience == nil {
			c.Experience = &ExperienceParams{}
		}
		return c.Experience.validate()
	case KindEducation:
		if c.Education == nil {
			return errors.New("education parameters are required")
		}
		return c.Education.validate()
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
}

func (p *KeywordParams) validate() error {
	p.Keywords = terms(p.Keywords)
	if len(p.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	if p.Expected < 0 {
		return fmt.Errorf("expected must not be negative, got %d", p.Expected)
	}
	if p.Expected == 0 {
		p.Expected = len(p.Keywords)
	}
	return nil
}

func (p *SectionParams) validate() error {
	if len(p.Sections) == 0 {
		return errors.New("at least one section is required")
	}

	sections := make([]Section, 0, len(p.Sections))
	points := 0.0
	for _, s := range p.Sections {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return errors.New("section name is required")
		}
		s.Aliases = terms(append([]string{s.Name}, s.Aliases...))
		if len(s.Aliases) == 0 {
			return fmt.Errorf("section %q has no usable aliases", s.Name)
		}
		if math.IsNaN(s.Points) || s.Points < 0 {
			return fmt.Errorf("section %q: points must not be negative", s.Name)
		}
		if s.Points == 0 {
			s.Points = 1
		}
		s.Hint = strings.TrimSpace(s.Hint)
		points += s.Points
		sections = append(sections, s)
	}

	if points <= 0 {
		return errors.New("sections carry no points")
	}

	p.Sections = sections
	return nil
}

func (p *ContactParams) validate() error {
	if len(p.Patterns) == 0 {
		p.Patterns = []string{PatternEmail, PatternPhone}
		return nil
	}

	patterns := make([]string, 0, len(p.Patterns))
	seen := make(map[string]struct{})
	for _, name := range p.Patterns {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != PatternEmail && name != PatternPhone {
			return fmt.Errorf("unknown contact pattern %q", name)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		patterns = append(patterns, name)
	}
	p.Patterns = patterns
	return nil
}

func (p *LengthParams) validate() error {
	if p.MinWords < 0 || p.IdealMinWords < p.MinWords || p.IdealMaxWords < p.IdealMinWords || p.MaxWords < p.IdealMaxWords {
		return fmt.Errorf("word breakpoints must satisfy 0 <= min (%d) <= ideal_min (%d) <= ideal_max (%d) <= max (%d)",
			p.MinWords, p.IdealMinWords, p.IdealMaxWords, p.MaxWords)
	}
	if p.IdealMaxWords == 0 {
		return errors.New("ideal_max_words must be positive")
	}
	return nil
}

func (p *ExperienceParams) validate() error {
	if p.TargetYears == 0 {
		p.TargetYears = 5
	}
	if p.MaxYears == 0 {
		p.MaxYears = 45
	}
	if math.IsNaN(p.TargetYears) || p.TargetYears < 0 {
		return fmt.Errorf("target_years must be positive, got %v", p.TargetYears)
	}
	if math.IsNaN(p.MaxYears) || p.MaxYears < p.TargetYears {
		return fmt.Errorf("max_years (%v) must not be below target_years (%v)", p.MaxYears, p.TargetYears)
	}
	return nil
}

func (p *EducationParams) validate() error {
	if len(p.Levels) == 0 {
		return errors.New("at least one education level is required")
	}

	levels := make([]EducationLevel, 0, len(p.Levels))
	for _, l := range p.Levels {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return errors.New("education level name is required")
		}
		l.Markers = terms(l.Markers)
		if len(l.Markers) == 0 {
			return fmt.Errorf("education level %q has no markers", l.Name)
		}
		if math.IsNaN(l.Score) || l.Score < 0 || l.Score > 1 {
			return fmt.Errorf("education level %q: score must be within [0,1], got %v", l.Name, l.Score)
		}
		levels = append(levels, l)
	}
	p.Levels = levels
	return nil
}

func (p Profile) normalized() Profile {
	fields := make([]Field, 0, len(p.Fields))
	for _, f := range p.Fields {
		f.Name = strings.TrimSpace(f.Name)
		f.Keywords = terms(f.Keywords)
		if f.Name == "" || len(f.Keywords) == 0 {
			continue
		}
		fields = append(fields, f)
	}

	return Profile{
		Fields:          fields,
		InternshipTerms: terms(p.InternshipTerms),
		ExperienceTerms: terms(p.ExperienceTerms),
	}
}

func (p Profile) clone() Profile {
	fields := slices.Clone(p.Fields)
	for i := range fields {
		fields[i].Keywords = slices.Clone(fields[i].Keywords)
	}
	return Profile{
		Fields:          fields,
		InternshipTerms: slices.Clone(p.InternshipTerms),
		ExperienceTerms: slices.Clone(p.ExperienceTerms),
	}
}
