package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

func extractPDF(ctx context.Context, data []byte) (res Result, err error) {
	// The reader panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &ExtractionError{Kind: KindPDF, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, &ExtractionError{Kind: KindPDF, Err: err}
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, &ExtractionError{Kind: KindPDF, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	log.Debug().Int("pages", numPages).Int("bytes", len(data)).Msg("PDF extracted")
	return Result{Text: strings.Join(pages, "\n"), PageCount: numPages}, nil
}
