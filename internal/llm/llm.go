package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend identifies a generation provider. The set is closed.
type Backend string

const (
	BackendHosted Backend = "hosted"
	BackendLocal  Backend = "local"
)

// ParseBackend maps a configuration value onto a Backend.
func ParseBackend(raw string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(raw))) {
	case BackendHosted:
		return BackendHosted, nil
	case BackendLocal:
		return BackendLocal, nil
	default:
		return "", fmt.Errorf("unknown llm backend %q", raw)
	}
}

// Generator produces a roast for the given resume text. Implementations make exactly one attempt.
type Generator interface {
	Generate(ctx context.Context, resumeText string) (string, error)
	Backend() Backend
}

var (
	// ErrMissingCredential indicates the backend has no API key configured.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUpstreamUnavailable indicates a transport failure, timeout or non-success status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse indicates the response lacked the expected fields.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyResponse indicates the backend answered with blank text.
	ErrEmptyResponse = errors.New("empty response")
)

// UpstreamError reports an unreachable backend. Hint is safe to show to end users.
type UpstreamError struct {
	Backend Backend
	Hint    string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s backend unavailable: %v", e.Backend, e.Err)
}

// Unwrap exposes both ErrUpstreamUnavailable and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamUnavailable, e.Err}
}
