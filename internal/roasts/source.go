package roasts

import (
	"context"
	"errors"
	"strings"
)

// PDFExtractor turns PDF bytes into text.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, data []byte) (string, error)
}

// Resolver turns a Submission into a single candidate resume string.
// A file takes precedence over pasted text when both are present.
type Resolver struct {
	PDF PDFExtractor
}

// Resolve returns the resume text for sub.
func (r Resolver) Resolve(ctx context.Context, sub Submission) (string, error) {
	if sub.File != nil {
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(sub.File.Name)), ".pdf") {
			return "", ErrUnsupportedFileType
		}
		if r.PDF == nil {
			return "", errors.New("pdf extractor not configured")
		}
		return r.PDF.ExtractPDF(ctx, sub.File.Data)
	}
	if sub.Text != nil {
		text := strings.TrimSpace(*sub.Text)
		if text == "" {
			return "", ErrNoInputProvided
		}
		return text, nil
	}
	return "", ErrNoInputProvided
}
