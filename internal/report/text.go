package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/scoring"
)

const indent = "  "

// Text is the human readable format.
type Text struct{}

func NewText() *Text {
	return &Text{}
}

func (f *Text) Name() string {
	return "text"
}

type palette struct {
	title, good, fair, poor, muted *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title: color.New(color.FgWhite, color.Bold),
		good:  color.New(color.FgGreen),
		fair:  color.New(color.FgYellow),
		poor:  color.New(color.FgRed),
		muted: color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.good, p.fair, p.poor, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

// grade picks a color by the share of the maximum reached.
func (p palette) grade(share float64) *color.Color {
	switch {
	case share >= 0.7:
		return p.good
	case share >= 0.4:
		return p.fair
	default:
		return p.poor
	}
}

func (f *Text) Format(r *scoring.Result, opts Options) (string, error) {
	p := newPalette(opts.NoColor)

	var b strings.Builder
	b.WriteString(totalLine(r, p))
	b.WriteString("\n")

	if !opts.Verbose {
		return b.String(), nil
	}

	fmt.Fprintf(&b, "pages: %d, words: %d\n", r.Pages, r.Words)

	for _, c := range r.Criteria {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", p.title.Sprintf("[%s]", c.ID), c.Name)
		fmt.Fprintf(&b, "%sweight %s  sub-score %s  contribution %s\n",
			indent, number(c.Weight), p.grade(c.SubScore).Sprint(fixed(c.SubScore)), fixed(c.Contribution))

		writeEvidence(&b, c.Evidence, p)
	}

	writeProfile(&b, r, p)

	return b.String(), nil
}

// totalLine is shared by both modes so the total reads the same in each.
func totalLine(r *scoring.Result, p palette) string {
	share := 0.0
	if span := r.Scale.Max - r.Scale.Min; span > 0 {
		share = (r.Total - r.Scale.Min) / span
	}
	name := r.Document
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("%s: %s / %s", name, p.grade(share).Sprint(fixed(r.Total)), number(r.Scale.Max))
}

func writeEvidence(b *strings.Builder, ev extract.Evidence, p palette) {
	if ev.Empty() {
		fmt.Fprintf(b, "%s%s\n", indent, p.muted.Sprint(NoMatch))
	} else {
		items := make([]string, 0, len(ev.Matches))
		for _, m := range ev.Matches {
			items = append(items, matchString(m))
		}
		fmt.Fprintf(b, "%smatched: %s\n", indent, strings.Join(items, ", "))
	}

	keys := make([]string, 0, len(ev.Details))
	for k := range ev.Details {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s%s: %s\n", indent, k, ev.Details[k])
	}

	if len(ev.Missing) > 0 {
		fmt.Fprintf(b, "%smissing: %s\n", indent, strings.Join(ev.Missing, ", "))
	}
	for _, hint := range ev.Hints {
		fmt.Fprintf(b, "%shint: %s\n", indent, p.muted.Sprint(hint))
	}
}

func matchString(m extract.Match) string {
	var s string
	switch {
	case m.Text == "":
		s = fmt.Sprintf("%s %d", m.Label, m.Count)
	case m.Text == m.Label:
		s = m.Label
	default:
		s = fmt.Sprintf("%s %q", m.Label, m.Text)
	}
	if m.Text != "" && m.Count > 1 {
		s += fmt.Sprintf(" x%d", m.Count)
	}
	return s
}

func writeProfile(b *strings.Builder, r *scoring.Result, p palette) {
	b.WriteString("\n")
	fmt.Fprintf(b, "%s\n", p.title.Sprint("[profile]"))
	fmt.Fprintf(b, "%slevel: %s\n", indent, r.Profile.Level)
	if r.Profile.Field == "" {
		return
	}
	fmt.Fprintf(b, "%spredicted field: %s (%s)\n", indent, r.Profile.Field, strings.Join(r.Profile.FieldMatches, ", "))
	if len(r.Profile.RecommendedSkills) > 0 {
		fmt.Fprintf(b, "%srecommended skills: %s\n", indent, strings.Join(r.Profile.RecommendedSkills, ", "))
	}
}

func fixed(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

// number prints configuration values without trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
