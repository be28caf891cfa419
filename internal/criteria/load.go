package criteria

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/resume-scorer/internal/normalize"
)

//go:embed default_criteria.yaml
var defaultCriteria []byte

const (
	keyCriteria = "criteria"
	keyScale    = "scale"
	keyProfile  = "profile"
)

// Spec is the configuration file form of a criterion. Params are decoded
// into the parameter block that matches Kind.
type Spec struct {
	ID     string         `mapstructure:"id"`
	Name   string         `mapstructure:"name"`
	Kind   string         `mapstructure:"kind"`
	Weight float64        `mapstructure:"weight"`
	Params map[string]any `mapstructure:"params"`
}

// Default returns the built-in criteria set.
func Default() (*Set, error) {
	v, err := defaultViper()
	if err != nil {
		return nil, err
	}
	return decode(v, nil)
}

// LoadFile reads a criteria file (any format viper understands). Scale and
// profile sections missing from the file are taken from the built-in set.
func LoadFile(path string) (*Set, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading criteria file %q: %w", ErrInvalid, path, err)
	}
	return Load(v)
}

// Load builds a Set from the criteria, scale and profile keys of v. Missing
// scale and profile keys fall back to the built-in values.
func Load(v *viper.Viper) (*Set, error) {
	if !v.IsSet(keyCriteria) {
		return nil, fmt.Errorf("%w: %q key is missing", ErrInvalid, keyCriteria)
	}

	fallback, err := Default()
	if err != nil {
		return nil, err
	}

	return decode(v, fallback)
}

func defaultViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultCriteria)); err != nil {
		return nil, fmt.Errorf("%w: reading built-in criteria: %w", ErrInvalid, err)
	}
	return v, nil
}

func decode(v *viper.Viper, fallback *Set) (*Set, error) {
	var specs []Spec
	if err := v.UnmarshalKey(keyCriteria, &specs); err != nil {
		return nil, fmt.Errorf("%w: decoding criteria: %w", ErrInvalid, err)
	}

	criteria := make([]Criterion, 0, len(specs))
	for i, spec := range specs {
		c, err := spec.toCriterion()
		if err != nil {
			id := spec.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("%w: criterion %q: %w", ErrInvalid, id, err)
		}
		criteria = append(criteria, c)
	}

	var scale Scale
	if v.IsSet(keyScale) {
		if err := v.UnmarshalKey(keyScale, &scale); err != nil {
			return nil, fmt.Errorf("%w: decoding scale: %w", ErrInvalid, err)
		}
	} else if fallback != nil {
		scale = fallback.Scale()
	}

	var profile Profile
	if v.IsSet(keyProfile) {
		if err := v.UnmarshalKey(keyProfile, &profile); err != nil {
			return nil, fmt.Errorf("%w: decoding profile: %w", ErrInvalid, err)
		}
	} else if fallback != nil {
		profile = fallback.Profile()
	}

	return NewSet(criteria, scale, profile)
}

func (s Spec) toCriterion() (Criterion, error) {
	c := Criterion{
		ID:     s.ID,
		Name:   s.Name,
		Kind:   Kind(strings.ToLower(strings.TrimSpace(s.Kind))),
		Weight: s.Weight,
	}

	var target any
	switch c.Kind {
	case KindKeywords:
		c.Keywords = &KeywordParams{}
		target = c.Keywords
	case KindSections:
		c.Sections = &SectionParams{}
		target = c.Sections
	case KindContact:
		c.Contact = &ContactParams{}
		target = c.Contact
	case KindLength:
		c.Length = &LengthParams{}
		target = c.Length
	case KindExperience:
		c.Experience = &ExperienceParams{}
		target = c.Experience
	case KindEducation:
		c.Education = &EducationParams{}
		target = c.Education
	default:
		return c, fmt.Errorf("unknown kind %q (supported: %s)", s.Kind, kindList())
	}

	if len(s.Params) == 0 {
		return c, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return c, err
	}
	if err := decoder.Decode(s.Params); err != nil {
		return c, fmt.Errorf("decoding %s params: %w", c.Kind, err)
	}

	return c, nil
}

func kindList() string {
	kinds := Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// terms normalizes match terms the same way document text is normalized,
// dropping empty and duplicate entries while keeping order.
func terms(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = normalize.Text(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
