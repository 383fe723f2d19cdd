package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a scene node identifier supplied by a caller.
// It rejects ids that could be used for injection or that are obviously
// malformed, without constraining the host's id scheme beyond safety.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSelector, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidSelector, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSelector, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateInputPath validates a document input path or URL for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "input path too long (max 500 characters)")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "input path contains null byte")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid control characters")
		}
	}

	return nil
}
