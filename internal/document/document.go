package document

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is a supported upload format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// ErrUnsupportedType is returned when neither the content type nor the
// file extension names a supported format.
var ErrUnsupportedType = errors.New("unsupported document type")

// ExtractionError means the buffer could not be opened or parsed at all.
type ExtractionError struct {
	Kind Kind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Result is the plain text of a document. Text may be empty.
type Result struct {
	Text      string
	PageCount int
}

// DetectKind resolves the format from a content type, falling back to the
// file extension when the type is missing or generic.
func DetectKind(contentType, filename string) (Kind, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i != -1 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case MimePDF:
		return KindPDF, nil
	case MimeDOCX:
		return KindDOCX, nil
	case MimeText:
		return KindText, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt", ".md":
		return KindText, nil
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedType, filename, contentType)
}

// Extract turns data into plain text. Pages are read in document order.
// A document with no extractable text yields an empty Result, not an error.
func Extract(ctx context.Context, data []byte, kind Kind) (Result, error) {
	switch kind {
	case KindPDF:
		return extractPDF(ctx, data)
	case KindDOCX:
		return extractDOCX(data)
	case KindText:
		return Result{Text: string(data), PageCount: 1}, nil
	}
	return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
}
