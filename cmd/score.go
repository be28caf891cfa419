package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/document"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/report"
	"github.com/spigell/resume-scorer/internal/scoring"
)

type scoreOptions struct {
	Path     string
	Format   string
	Report   report.Options
	Parallel bool
}

// run is the main command for the cli.
func run(cmd *cobra.Command, path string) error {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return err
	}

	log.Debug("starting the resume-scorer", zap.String("version", version))

	set, err := loadCriteria(viper.GetViper(), config.CriteriaFile)
	if err != nil {
		return err
	}

	log.Debug("criteria loaded",
		zap.Int("count", set.Len()),
		zap.String("source", criteriaSource(config.CriteriaFile)),
	)

	return score(cmd.Context(), cmd.OutOrStdout(), set, scoreOptions{
		Path:   path,
		Format: strings.ToLower(strings.TrimSpace(config.Format)),
		Report: report.Options{
			Verbose: config.Verbose,
			NoColor: config.NoColor,
		},
		Parallel: config.Parallel,
	}, log)
}

// score runs the pipeline for one file. The report is written in a single
// call after scoring succeeded, so a failure never leaves a partial report.
func score(ctx context.Context, out io.Writer, set *criteria.Set, opts scoreOptions, log *zap.Logger) error {
	if _, ok := report.DefaultRegistry.Get(opts.Format); !ok {
		return fmt.Errorf("unsupported format %q, available formats: %s", opts.Format, strings.Join(report.Formats(), ", "))
	}

	engine, err := scoring.New(set, scoring.WithLogger(log), scoring.WithParallel(opts.Parallel))
	if err != nil {
		return err
	}

	raw, err := document.Load(ctx, opts.Path, log)
	if err != nil {
		return err
	}

	result, err := engine.Score(ctx, scoring.Document{
		Name:  raw.Name(),
		Text:  raw.Text,
		Pages: raw.Pages,
	})
	if err != nil {
		return fmt.Errorf("scoring %s: %w", opts.Path, err)
	}

	rendered, err := report.Render(opts.Format, result, opts.Report)
	if err != nil {
		return err
	}

	log.Info("resume scored",
		zap.String(logger.FieldDocument, opts.Path),
		zap.Float64("total", result.Total),
	)

	_, err = io.WriteString(out, rendered)
	return err
}

func criteriaSource(file string) string {
	switch {
	case file != "":
		return file
	case viper.IsSet("criteria"):
		return viper.ConfigFileUsed()
	default:
		return "built-in"
	}
}
