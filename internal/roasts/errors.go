package roasts

import (
	"errors"
	"fmt"
	"net/http"

	"hiremenot/internal/extract"
	"hiremenot/internal/llm"
)

var (
	// ErrNotFound indicates the roast does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoInputProvided indicates neither a file nor text was submitted.
	ErrNoInputProvided = errors.New("no resume provided")

	// ErrUnsupportedFileType indicates an uploaded file that is not a PDF.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyInput indicates resume text that is blank after trimming.
	ErrEmptyInput = errors.New("resume text is empty")

	ErrTooShort = errors.New("resume is too short")
	ErrTooLong  = errors.New("resume is too long")
)

// Error codes returned to clients.
const (
	CodeNoInput           = "no_input"
	CodeUnsupportedFile   = "unsupported_file_type"
	CodeInvalidPDF        = "invalid_pdf"
	CodeEmptyPDF          = "empty_pdf"
	CodeNoExtractableText = "no_extractable_text"
	CodeEmptyInput        = "empty_input"
	CodeTooShort          = "too_short"
	CodeTooLong           = "too_long"
	CodeMissingCredential = "missing_credential"
	CodeUpstream          = "upstream_unavailable"
	CodeMalformedResponse = "malformed_response"
	CodeEmptyResponse     = "empty_response"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal_error"
)

// LengthError reports a resume outside the configured length bounds.
type LengthError struct {
	Err    error
	Limit  int
	Length int
}

func (e *LengthError) Error() string {
	if errors.Is(e.Err, ErrTooLong) {
		return fmt.Sprintf("Resume is too long (maximum %d characters allowed)", e.Limit)
	}
	return fmt.Sprintf("Resume is too short (minimum %d characters required)", e.Limit)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// Failure is the client-facing rendering of a pipeline error.
type Failure struct {
	Status  int
	Code    string
	Message string
}

// Classify maps any error returned by Service onto a status, code and short message.
// Unknown errors become a generic internal failure without leaking detail.
func Classify(err error) Failure {
	var lengthErr *LengthError
	var upstreamErr *llm.UpstreamError

	switch {
	case errors.Is(err, ErrNotFound):
		return Failure{http.StatusNotFound, CodeNotFound, "Roast not found."}
	case errors.Is(err, ErrNoInputProvided):
		return Failure{http.StatusBadRequest, CodeNoInput, "Please provide a resume (upload PDF or paste text)."}
	case errors.Is(err, ErrUnsupportedFileType):
		return Failure{http.StatusBadRequest, CodeUnsupportedFile, "Please upload a PDF file."}
	case errors.Is(err, extract.ErrInvalidPDF):
		return Failure{http.StatusBadRequest, CodeInvalidPDF, "Invalid PDF file."}
	case errors.Is(err, extract.ErrEmptyPDF):
		return Failure{http.StatusBadRequest, CodeEmptyPDF, "PDF file is empty (no pages found)."}
	case errors.Is(err, extract.ErrNoExtractableText):
		return Failure{http.StatusBadRequest, CodeNoExtractableText, "No text could be extracted from the PDF. It might be an image-based PDF."}
	case errors.Is(err, ErrEmptyInput):
		return Failure{http.StatusBadRequest, CodeEmptyInput, "Resume text is empty."}
	case errors.As(err, &lengthErr):
		code := CodeTooShort
		if errors.Is(lengthErr.Err, ErrTooLong) {
			code = CodeTooLong
		}
		return Failure{http.StatusBadRequest, code, lengthErr.Error() + "."}
	case errors.Is(err, llm.ErrMissingCredential):
		return Failure{http.StatusServiceUnavailable, CodeMissingCredential, "Failed to generate roast: the AI service is not configured."}
	case errors.As(err, &upstreamErr):
		return Failure{http.StatusBadGateway, CodeUpstream, "Failed to generate roast: " + upstreamErr.Hint}
	case errors.Is(err, llm.ErrUpstreamUnavailable):
		return Failure{http.StatusBadGateway, CodeUpstream, "Failed to generate roast: the AI service is unavailable."}
	case errors.Is(err, llm.ErrMalformedResponse):
		return Failure{http.StatusBadGateway, CodeMalformedResponse, "Failed to generate roast: the AI service returned an unexpected response."}
	case errors.Is(err, llm.ErrEmptyResponse):
		return Failure{http.StatusBadGateway, CodeEmptyResponse, "Failed to generate roast: the AI service returned an empty roast."}
	default:
		return Failure{http.StatusInternalServerError, CodeInternal, "Something went wrong while roasting your resume. Please try again."}
	}
}
