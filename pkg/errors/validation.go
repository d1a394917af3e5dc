package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// bundleExtensions lists the file extensions accepted by ValidateBundlePath.
var bundleExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateBundlePath validates a resource bundle path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Extension must be .json, .yaml, .yml or .toml
func ValidateBundlePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "bundle path cannot be empty")
	}

	if len(path) > 1024 {
		return New(ErrCodeInvalidPath, "bundle path too long (max 1024 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "bundle path contains invalid control characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !bundleExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported bundle extension %q (must be one of: .json, .yaml, .yml, .toml)", ext)
	}

	return nil
}

// ValidateOutputFormats checks every requested output format against the
// allowed set. The first unknown format is reported.
func ValidateOutputFormats(formats []string, allowed map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !allowed[strings.TrimSpace(f)] {
			return New(ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	return nil
}
