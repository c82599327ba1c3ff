package errors

import (
	"strings"
	"unicode"
)

// maxGraphNameLength bounds graph names, which become file names.
const maxGraphNameLength = 200

// ValidateGraphName validates a graph name before it is used to derive an
// output file name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 200 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGraphName, "graph name cannot be empty")
	}

	if len(name) > maxGraphNameLength {
		return New(ErrCodeInvalidGraphName, "graph name too long (max %d characters)", maxGraphNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraphName, "graph name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidGraphName, "graph name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates an explicit destination path.
// Unlike graph names, destinations may contain directories.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}
