package errors

import (
	"math"
	"strings"
)

// ValidateFraction checks that v is a finite number within [0, 1].
// name identifies the setting in the returned error.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and not below zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed map[string]bool) error {
	if !allowed[format] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
