package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/normalize"
)

func extractorFor(t *testing.T, c criteria.Criterion) Extractor {
	t.Helper()

	c.Weight = 1
	set, err := criteria.NewSet([]criteria.Criterion{c}, criteria.Scale{}, criteria.Profile{})
	require.NoError(t, err)

	ex, err := New(set.Criteria()[0])
	require.NoError(t, err)
	return ex
}

func defaultExtractor(t *testing.T, id string) Extractor {
	t.Helper()

	set, err := criteria.Default()
	require.NoError(t, err)

	c, ok := set.Find(id)
	require.True(t, ok, "default criterion %q", id)

	ex, err := New(c)
	require.NoError(t, err)
	return ex
}

func TestKeywordsThreeOfFive(t *testing.T) {
	ex := extractorFor(t, criteria.Criterion{
		ID:   "devops",
		Kind: criteria.KindKeywords,
		Keywords: &criteria.KeywordParams{
			Keywords: []string{"python", "go", "docker", "kubernetes", "terraform"},
		},
	})

	ev := ex.Extract(normalize.Text("Senior engineer: Python, Go and Docker. Python again."))

	require.Len(t, ev.Matches, 3)
	assert.Equal(t, 3.0, ev.Found)
	assert.Equal(t, 5.0, ev.Expected)
	assert.InDelta(t, 0.6, ex.SubScore(ev), 1e-9)

	assert.Equal(t, Match{Label: "python", Text: "python", Offset: 17, Count: 2}, ev.Matches[0])
	assert.Equal(t, "go", ev.Matches[1].Label)
	assert.Equal(t, "docker", ev.Matches[2].Label)
}

func TestKeywordsExpectedCapsScore(t *testing.T) {
	ex := extractorFor(t, criteria.Criterion{
		ID:   "langs",
		Kind: criteria.KindKeywords,
		Keywords: &criteria.KeywordParams{
			Keywords: []string{"go", "rust", "java"},
			Expected: 2,
		},
	})

	ev := ex.Extract("go rust java")
	assert.Equal(t, 3.0, ev.Found)
	assert.Equal(t, 1.0, ex.SubScore(ev))
}

func TestContact(t *testing.T) {
	t.Parallel()

	ex := defaultExtractor(t, "contact")

	tests := []struct {
		name    string
		text    string
		score   float64
		matches []Match
	}{
		{
			name:  "email only",
			text:  "Jane Doe\njane.doe@example.com\nBackend developer",
			score: 1,
			matches: []Match{
				{Label: criteria.PatternEmail, Text: "jane.doe@example.com", Offset: 9, Count: 1},
			},
		},
		{
			name:  "phone only",
			text:  "call +1 (555) 123-4567",
			score: 1,
			matches: []Match{
				{Label: criteria.PatternPhone, Text: "+1 (555) 123-4567", Offset: 5, Count: 1},
			},
		},
		{
			name:  "email repeated and phone",
			text:  "a@b.io 555.123.4567 a@b.io",
			score: 1,
			matches: []Match{
				{Label: criteria.PatternEmail, Text: "a@b.io", Offset: 0, Count: 2},
				{Label: criteria.PatternPhone, Text: "555.123.4567", Offset: 7, Count: 1},
			},
		},
		{
			name:  "international phone",
			text:  "london +44 20 7946 0958",
			score: 1,
			matches: []Match{
				{Label: criteria.PatternPhone, Text: "+44 20 7946 0958", Offset: 7, Count: 1},
			},
		},
		{
			name:  "nothing",
			text:  "worked 2016 - 2020 at acme",
			score: 0,
		},
		{
			name:  "language versions after c++",
			text:  "Skills: C++11 14 17, Python",
			score: 0,
		},
		{
			name:  "percentage growth",
			text:  "Revenue grew +150 200 300%",
			score: 0,
		},
		{
			name:  "space separated id",
			text:  "Employee ID 123 456 7890",
			score: 0,
		},
		{
			name:  "short plus number",
			text:  "team of +12 34",
			score: 0,
		},
		{
			name:  "empty",
			text:  "",
			score: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := ex.Extract(normalize.Text(tt.text))
			assert.Equal(t, tt.matches, ev.Matches)
			assert.Equal(t, tt.score, ex.SubScore(ev))
		})
	}
}

func TestContactOnlyEnabledPatterns(t *testing.T) {
	ex := extractorFor(t, criteria.Criterion{
		ID:      "email",
		Kind:    criteria.KindContact,
		Contact: &criteria.ContactParams{Patterns: []string{"email"}},
	})

	ev := ex.Extract("555-123-4567")
	assert.True(t, ev.Empty())
	assert.Equal(t, 0.0, ex.SubScore(ev))
}

func TestSections(t *testing.T) {
	ex := defaultExtractor(t, "sections")

	ev := ex.Extract(normalize.Text("EDUCATION\nB.Sc physics\nWORK EXPERIENCE\nAcme\nSkills: Go"))

	labels := make([]string, 0, len(ev.Matches))
	for _, m := range ev.Matches {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"education", "experience", "skills"}, labels)
	assert.Equal(t, "experience", ev.Matches[1].Text)

	assert.Equal(t, 10.0, ev.Expected)
	assert.InDelta(t, 0.3, ex.SubScore(ev), 1e-9)
	assert.Contains(t, ev.Missing, "objective")
	assert.Len(t, ev.Missing, 7)
	assert.Len(t, ev.Hints, 7)
}

func TestSectionsWeightedPoints(t *testing.T) {
	ex := extractorFor(t, criteria.Criterion{
		ID:   "sections",
		Kind: criteria.KindSections,
		Sections: &criteria.SectionParams{Sections: []criteria.Section{
			{Name: "Experience", Points: 3},
			{Name: "Hobbies", Aliases: []string{"interests"}},
		}},
	})

	ev := ex.Extract("experience acme")
	assert.Equal(t, 4.0, ev.Expected)
	assert.InDelta(t, 0.75, ex.SubScore(ev), 1e-9)
	assert.Equal(t, []string{"Hobbies"}, ev.Missing)
	assert.Empty(t, ev.Hints)

	ev = ex.Extract("my interests")
	assert.InDelta(t, 0.25, ex.SubScore(ev), 1e-9)
	assert.Equal(t, "interests", ev.Matches[0].Text)
}

func TestLength(t *testing.T) {
	t.Parallel()

	ex := defaultExtractor(t, "length")

	tests := []struct {
		words int
		score float64
	}{
		{words: 0, score: 0},
		{words: 50, score: 0},
		{words: 100, score: 0},
		{words: 200, score: 0.5},
		{words: 300, score: 1},
		{words: 600, score: 1},
		{words: 900, score: 1},
		{words: 1450, score: 0.5},
		{words: 2000, score: 0},
		{words: 2500, score: 0},
	}

	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		ev := ex.Extract(text)
		assert.InDelta(t, tt.score, ex.SubScore(ev), 1e-9, "%d words", tt.words)
		if tt.words == 0 {
			assert.True(t, ev.Empty())
			continue
		}
		assert.Equal(t, float64(tt.words), ev.Found)
		assert.Equal(t, tt.words, ev.Matches[0].Count)
	}
}

func TestExperience(t *testing.T) {
	t.Parallel()

	ex := defaultExtractor(t, "experience")

	tests := []struct {
		name   string
		text   string
		years  float64
		score  float64
		labels []string
	}{
		{
			name:   "explicit phrase",
			text:   "Software engineer with 7+ years of experience",
			years:  7,
			score:  1,
			labels: []string{labelPhrase},
		},
		{
			name:   "fractional phrase",
			text:   "2.5 yrs in support",
			years:  2.5,
			score:  0.5,
			labels: []string{labelPhrase},
		},
		{
			name:   "overlapping ranges merge",
			text:   "Acme 2016 - 2018, Initech 2017 – 2020",
			years:  4,
			score:  0.8,
			labels: []string{labelRange, labelRange},
		},
		{
			name:   "disjoint ranges add up",
			text:   "jan 2010 to mar 2011; 2015-2017",
			years:  3,
			score:  0.6,
			labels: []string{labelRange, labelRange},
		},
		{
			name:   "larger of phrase and ranges",
			text:   "3 years total. 2010 - 2016",
			years:  6,
			score:  1,
			labels: []string{labelPhrase, labelRange},
		},
		{
			name:   "open range is not counted",
			text:   "Jan 2019 - Present",
			years:  0,
			score:  0,
			labels: []string{labelOpenRange},
		},
		{
			name:  "implausible phrase ignored",
			text:  "my grandfather turned 99 years",
			years: 0,
			score: 0,
		},
		{
			name:  "reversed range ignored",
			text:  "2020 - 2016",
			years: 0,
			score: 0,
		},
		{
			name:  "empty",
			text:  "",
			years: 0,
			score: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := ex.Extract(normalize.Text(tt.text))
			assert.InDelta(t, tt.years, ev.Found, 1e-9)
			assert.InDelta(t, tt.score, ex.SubScore(ev), 1e-9)

			var labels []string
			for _, m := range ev.Matches {
				labels = append(labels, m.Label)
			}
			assert.Equal(t, tt.labels, labels)
		})
	}
}

func TestEducation(t *testing.T) {
	t.Parallel()

	ex := defaultExtractor(t, "education")

	tests := []struct {
		name    string
		text    string
		score   float64
		highest string
	}{
		{name: "best of several", text: "B.Tech in CS, M.Tech in progress", score: 0.9, highest: "master"},
		{name: "doctorate", text: "Ph.D. in physics", score: 1, highest: "doctorate"},
		{name: "diploma beats school", text: "High school, then a diploma in design", score: 0.5, highest: "diploma"},
		{name: "job title is not a degree", text: "certified scrum master", score: 0},
		{name: "empty", text: "", score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := ex.Extract(normalize.Text(tt.text))
			assert.InDelta(t, tt.score, ex.SubScore(ev), 1e-9)
			if tt.highest == "" {
				assert.True(t, ev.Empty())
				return
			}
			assert.Equal(t, tt.highest, ev.Details["highest level"])
		})
	}
}

func TestEmptyTextYieldsNoSignal(t *testing.T) {
	set, err := criteria.Default()
	require.NoError(t, err)

	for _, c := range set.Criteria() {
		ex, err := New(c)
		require.NoError(t, err)

		ev := ex.Extract(normalize.Text(""))
		assert.True(t, ev.Empty(), "criterion %s", c.ID)
		assert.Zero(t, ex.SubScore(ev), "criterion %s", c.ID)
	}
}

func TestSubScoresAreBoundedAndDeterministic(t *testing.T) {
	set, err := criteria.Default()
	require.NoError(t, err)

	texts := []string{
		"",
		"x",
		strings.Repeat("python java go docker kubernetes aws linux sql git react ", 500),
		"jane@example.com +44 20 7946 0958 phd master's bachelor 40 years 1990 - 2030 education skills experience",
		"objective education experience internships skills hobbies interests achievements certifications projects",
	}

	for _, c := range set.Criteria() {
		ex, err := New(c)
		require.NoError(t, err)

		for _, raw := range texts {
			text := normalize.Text(raw)
			first := ex.Extract(text)
			second := ex.Extract(text)
			assert.Equal(t, first, second, "criterion %s", c.ID)

			score := ex.SubScore(first)
			assert.GreaterOrEqual(t, score, 0.0, "criterion %s", c.ID)
			assert.LessOrEqual(t, score, 1.0, "criterion %s", c.ID)
		}
	}
}

func TestNewRejectsIncompleteCriterion(t *testing.T) {
	_, err := New(criteria.Criterion{ID: "x", Kind: "magic"})
	assert.ErrorContains(t, err, `no extractor for kind "magic"`)

	_, err = New(criteria.Criterion{ID: "y", Kind: criteria.KindKeywords})
	assert.ErrorContains(t, err, "keywords parameters are missing")
}
