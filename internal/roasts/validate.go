package roasts

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMinLength = 50
	DefaultMaxLength = 10000
)

// Validator enforces length bounds, counted in characters on the trimmed text.
type Validator struct {
	MinLength int
	MaxLength int
}

// NewValidator builds a Validator. A non-positive max falls back to DefaultMaxLength.
func NewValidator(minLength, maxLength int) Validator {
	if minLength < 0 {
		minLength = 0
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return Validator{MinLength: minLength, MaxLength: maxLength}
}

// Validate returns nil when text is acceptable.
func (v Validator) Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyInput
	}
	n := utf8.RuneCountInString(trimmed)
	if n < v.MinLength {
		return &LengthError{Err: ErrTooShort, Limit: v.MinLength, Length: n}
	}
	if n > v.MaxLength {
		return &LengthError{Err: ErrTooLong, Limit: v.MaxLength, Length: n}
	}
	return nil
}
