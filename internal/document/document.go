// Package document reads resume files into raw text.
package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
)

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrUnreadable is returned when the input exists but cannot be read or
	// is not a valid document.
	ErrUnreadable = errors.New("file is unreadable")
)

// Raw is the extracted text of one file. It is never modified after Load.
type Raw struct {
	Path  string
	Text  string
	Pages int
	// SkippedPages counts pages whose text could not be decoded.
	SkippedPages int
}

// Name is the base name of the source file.
func (r *Raw) Name() string {
	return filepath.Base(r.Path)
}

// Extractor reads one file format.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Raw, error)
}

// ForFile returns the extractor for a filename. Anything that is not a plain
// text file is treated as PDF and rejected later if it is not one.
func ForFile(path string) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return &Text{}
	default:
		return &PDF{}
	}
}

// Load extracts the text of path. Missing files wrap ErrNotFound; every other
// input failure wraps ErrUnreadable.
func Load(ctx context.Context, path string, log *zap.Logger) (*Raw, error) {
	log = logger.WithFields(log, zap.String(logger.FieldDocument, path))

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	raw, err := ForFile(path).Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	if raw.SkippedPages > 0 {
		log.Warn("some pages could not be decoded", zap.Int("skipped", raw.SkippedPages), zap.Int("pages", raw.Pages))
	}
	if strings.TrimSpace(raw.Text) == "" {
		log.Warn("no text extracted", zap.String("hint", "scanned resumes without a text layer score zero"))
	}
	log.Debug("document loaded", zap.Int("pages", raw.Pages), zap.Int("bytes", len(raw.Text)))

	return raw, nil
}
