// Package shared provides common utility functions used across
// multiple packages in the rocrate-convert codebase.
package shared

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name without directory or extension, used to
// derive default output paths from input paths.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TrimName trims whitespace and a trailing comma from a display name.
func TrimName(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), ",")
}
