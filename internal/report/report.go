// Package report renders scoring results. Formatters only read the result.
package report

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spigell/resume-scorer/internal/scoring"
)

// NoMatch marks a criterion without matched evidence.
const NoMatch = "no match"

// Options controls rendering only; it never affects scores.
type Options struct {
	Verbose bool // per-criterion breakdown, evidence and profile
	NoColor bool // disable ANSI colors in text output
}

// Formatter renders a result in one output format.
type Formatter interface {
	// Name returns the format name used on the command line.
	Name() string
	Format(result *scoring.Result, opts Options) (string, error)
}

// Registry holds formatters by name.
type Registry struct {
	formatters map[string]Formatter
}

func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[string]Formatter, len(formatters))}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render formats the result with the named formatter.
func (r *Registry) Render(format string, result *scoring.Result, opts Options) (string, error) {
	f, ok := r.Get(format)
	if !ok {
		return "", fmt.Errorf("unsupported format %q, available formats: %s", format, strings.Join(r.List(), ", "))
	}
	if result == nil {
		return "", fmt.Errorf("nothing to render")
	}
	return f.Format(result, opts)
}

// DefaultRegistry knows the text, json and yaml formats.
var DefaultRegistry = NewRegistry(NewText(), NewJSON(), NewYAML())

// Render is a shortcut for DefaultRegistry.Render.
func Render(format string, result *scoring.Result, opts Options) (string, error) {
	return DefaultRegistry.Render(format, result, opts)
}

// Formats lists the formats of the default registry.
func Formats() []string {
	return DefaultRegistry.List()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
