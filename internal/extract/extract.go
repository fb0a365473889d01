package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pageSeparator = "\n\n"

// PDFExtractor pulls plain text out of PDF payloads using github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// ExtractPDF implements the extractor contract used by the roast pipeline.
func (PDFExtractor) ExtractPDF(ctx context.Context, data []byte) (string, error) {
	return ExtractPDF(ctx, data)
}

// ExtractPDF returns the text of every page joined by a blank line, trimmed.
// A page that fails to decode contributes nothing; only a document with no text at all fails.
func ExtractPDF(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := openPDF(data)
	if err != nil {
		return "", err
	}
	return joinPages(ctx, doc)
}

type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

type pdfDocument struct {
	r *pdf.Reader
}

func openPDF(data []byte) (doc pageSource, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidPDF)
	}
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, rec)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return pdfDocument{r: r}, nil
}

func (d pdfDocument) NumPage() (n int) {
	defer func() {
		if rec := recover(); rec != nil {
			n = -1
		}
	}()
	return d.r.NumPage()
}

func (d pdfDocument) PageText(i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", i, rec)
		}
	}()
	page := d.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func joinPages(ctx context.Context, doc pageSource) (string, error) {
	n := doc.NumPage()
	if n < 0 {
		return "", fmt.Errorf("%w: unreadable page tree", ErrInvalidPDF)
	}
	if n == 0 {
		return "", ErrEmptyPDF
	}

	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.PageText(i)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}

	out := strings.TrimSpace(strings.Join(parts, pageSeparator))
	if out == "" {
		return "", ErrNoExtractableText
	}
	return out, nil
}
