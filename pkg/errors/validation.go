package errors

import (
	"strings"
	"unicode"
)

// Output formats supported by the render sinks.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// ValidateFormat validates a render output format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatSVG, FormatDOT, FormatJSON, FormatPNG:
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	default:
		return New(ErrCodeInvalidFormat, "unsupported format %q (svg, dot, json, png)", format)
	}
}

// ValidateDatasetName validates a demo dataset name for safety. Dataset
// names are user input on both the CLI and the HTTP API, so the rules are
// conservative: lowercase letters, digits, and hyphens only.
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidDataset, "dataset name too long (max 64 characters)")
	}
	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return New(ErrCodeInvalidDataset, "dataset name contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateNodeID validates a graph node identifier. IDs travel through
// JSON, DOT output, and cache keys, so control characters are rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id contains control characters")
		}
	}
	return nil
}
