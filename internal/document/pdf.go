package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const (
	// Form feed as page separator.
	pageSeparator = "\f"

	// The header may be preceded by junk; readers accept it within the first KiB.
	headerWindow = 1024
)

var pdfHeader = []byte("%PDF-")

func init() {
	// pdfcpu would otherwise create a configuration directory on first use.
	api.DisableConfigDir()
}

// PDF extracts the text layer of a PDF document with ledongthuc/pdf and takes
// the page count from pdfcpu when it can parse the file.
type PDF struct{}

func (p *PDF) Extract(ctx context.Context, path string) (*Raw, error) {
	if err := checkHeader(path); err != nil {
		return nil, err
	}

	raw, err := readText(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	if pages, err := pageCount(path); err == nil && pages > 0 {
		raw.Pages = pages
	}

	return raw, nil
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	if !bytes.Contains(head[:n], pdfHeader) {
		return fmt.Errorf("%w: %s: not a PDF document", ErrUnreadable, path)
	}
	return nil
}

// readText walks every page. The parser panics on some malformed inputs, so
// panics are turned into errors.
func readText(ctx context.Context, path string) (raw *Raw, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw = &Raw{Path: path, Pages: reader.NumPage()}

	var buf strings.Builder
	for i := 1; i <= raw.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			raw.SkippedPages++
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			raw.SkippedPages++
			continue
		}
		if i > 1 {
			buf.WriteString(pageSeparator)
		}
		buf.WriteString(text)
	}
	raw.Text = buf.String()

	return raw, nil
}

func pageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("reading pdf structure: %v", r)
		}
	}()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, err
	}
	return pdfCtx.PageCount, nil
}
