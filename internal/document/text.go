package document

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Text reads already extracted plain text. Form feeds separate pages; a file
// without text has no pages.
type Text struct{}

func (t *Text) Extract(ctx context.Context, path string) (*Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	text := string(data)
	pages := 0
	if strings.TrimSpace(text) != "" {
		pages = strings.Count(text, pageSeparator) + 1
	}
	return &Raw{
		Path:  path,
		Text:  text,
		Pages: pages,
	}, nil
}
