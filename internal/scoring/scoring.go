// Package scoring turns resume text into a weighted score under a criteria set.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/normalize"
	"github.com/spigell/resume-scorer/internal/profile"
)

const previewLength = 120

// Document is the engine input: raw extracted text and where it came from.
type Document struct {
	Name  string
	Text  string
	Pages int
}

// CriterionScore is the outcome of one criterion. Contribution is the share
// of the total earned by the criterion, in scale units.
type CriterionScore struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Kind         criteria.Kind    `json:"kind" yaml:"kind"`
	Weight       float64          `json:"weight" yaml:"weight"`
	SubScore     float64          `json:"sub_score" yaml:"sub_score"`
	Contribution float64          `json:"contribution" yaml:"contribution"`
	Evidence     extract.Evidence `json:"evidence" yaml:"evidence"`
}

// Result is the score of one document. Criteria keep configuration order.
type Result struct {
	Document string           `json:"document" yaml:"document"`
	Pages    int              `json:"pages" yaml:"pages"`
	Words    int              `json:"words" yaml:"words"`
	Total    float64          `json:"total" yaml:"total"`
	Scale    criteria.Scale   `json:"scale" yaml:"scale"`
	Criteria []CriterionScore `json:"criteria" yaml:"criteria"`
	Profile  profile.Profile  `json:"profile" yaml:"profile"`
}

// Find returns the score of the criterion with the given id.
func (r *Result) Find(id string) (CriterionScore, bool) {
	for _, c := range r.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return CriterionScore{}, false
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.WithFields(l)
	}
}

// WithParallel runs the extractors concurrently. Results are identical to a
// sequential run.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.parallel = parallel
	}
}

// Engine scores documents. It is safe for concurrent use and never modifies
// its criteria set.
type Engine struct {
	set        *criteria.Set
	criteria   []criteria.Criterion
	extractors []extract.Extractor
	logger     *zap.Logger
	parallel   bool
}

// New prepares an extractor for every criterion of the set.
func New(set *criteria.Set, opts ...Option) (*Engine, error) {
	if set == nil {
		return nil, errors.New("criteria set is required")
	}

	e := &Engine{
		set:      set,
		criteria: set.Criteria(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.extractors = make([]extract.Extractor, len(e.criteria))
	for i, c := range e.criteria {
		ex, err := extract.New(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", criteria.ErrInvalid, err)
		}
		e.extractors[i] = ex
	}

	return e, nil
}

// Score normalizes the document text, runs every extractor and combines the
// sub-scores: total = min + sum(weight * sub-score) * (max - min), clamped to
// the scale. An empty document scores the scale minimum.
func (e *Engine) Score(ctx context.Context, doc Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	text := normalize.Text(doc.Text)

	log := logger.WithFields(e.logger, zap.String(logger.FieldDocument, doc.Name))
	log.Debug("text normalized",
		zap.Int("raw_bytes", len(doc.Text)),
		zap.Int("normalized_bytes", len(text)),
		zap.String("preview", logger.TruncateForLog(text, previewLength)),
	)

	scores := make([]CriterionScore, len(e.criteria))
	if err := e.extract(ctx, text, scores); err != nil {
		return nil, err
	}

	scale := e.set.Scale()
	span := scale.Max - scale.Min

	sum := 0.0
	for i := range scores {
		scores[i].Contribution = scores[i].Weight * scores[i].SubScore * span
		sum += scores[i].Weight * scores[i].SubScore

		logger.WithCriterion(log, scores[i].ID, string(scores[i].Kind)).Debug("criterion scored",
			zap.Float64("sub_score", scores[i].SubScore),
			zap.Float64("contribution", scores[i].Contribution),
			zap.Int("matches", len(scores[i].Evidence.Matches)),
		)
	}

	result := &Result{
		Document: doc.Name,
		Pages:    doc.Pages,
		Words:    normalize.WordCount(text),
		Total:    scale.Clamp(scale.Min + sum*span),
		Scale:    scale,
		Criteria: scores,
		Profile:  profile.Build(text, doc.Pages, e.set.Profile()),
	}

	log.Debug("document scored", zap.Float64("total", result.Total), zap.Duration("took", time.Since(start)))

	return result, nil
}

// extract fills scores[i] for criterion i. Every slot is written by exactly
// one goroutine, so no locking is needed.
func (e *Engine) extract(ctx context.Context, text string, scores []CriterionScore) error {
	run := func(i int) {
		c := e.criteria[i]
		ex := e.extractors[i]
		ev := ex.Extract(text)
		scores[i] = CriterionScore{
			ID:       c.ID,
			Name:     c.Name,
			Kind:     c.Kind,
			Weight:   c.Weight,
			SubScore: ex.SubScore(ev),
			Evidence: ev,
		}
	}

	if !e.parallel {
		for i := range e.criteria {
			run(i)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range e.criteria {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run(i)
			return nil
		})
	}

	return g.Wait()
}
