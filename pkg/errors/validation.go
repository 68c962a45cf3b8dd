package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Limits applied to caller-supplied workload sizes. Generation has no
// cancellation point, so these bound the time a single frame can take.
const (
	MaxIterations = 1_000_000
	MaxPoints     = 1_000_000
)

// ValidateIterations checks that n is a usable iteration count.
func ValidateIterations(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "iterations must be >= 0, got %d", n)
	}
	if n > MaxIterations {
		return New(ErrCodeInvalidInput, "iterations too large (max %d), got %d", MaxIterations, n)
	}
	return nil
}

// ValidatePointCount checks the size of a starting point set.
func ValidatePointCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "point count must be >= 0, got %d", n)
	}
	if n > MaxPoints {
		return New(ErrCodeInvalidInput, "point count too large (max %d), got %d", MaxPoints, n)
	}
	return nil
}

// presetNameRegex matches preset identifiers such as "sierpinski" or "barnsley-fern".
var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePresetName validates a preset identifier.
// Names come from query strings in the stream server, so they are kept to a
// conservative alphabet that can never form a path.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
