package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds sheet and text names from level files.
const maxNameLength = 128

// ValidateName validates a sheet or text block name from a level file.
//
// Names are used as map keys, log fields and clipboard output, so the rules
// are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLevel, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidLevel, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLevel, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a sheet reference inside a sheet set file.
// References are resolved relative to the set file, so they must stay
// inside its directory tree.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateSize validates a sheet size: both dimensions must be finite and
// strictly positive.
func ValidateSize(w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidLevel, "size must be positive, got %vx%v", w, h)
		}
	}
	return nil
}
