package extract

import "errors"

var (
	// ErrInvalidPDF indicates the payload could not be parsed as a PDF document.
	ErrInvalidPDF = errors.New("invalid pdf")

	// ErrEmptyPDF indicates a well-formed document with zero pages.
	ErrEmptyPDF = errors.New("pdf has no pages")

	// ErrNoExtractableText indicates no page produced any text, typically a scanned document.
	ErrNoExtractableText = errors.New("no extractable text")
)
