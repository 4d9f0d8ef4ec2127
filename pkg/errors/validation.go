package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Canvas limits accepted by ValidateCanvas.
const (
	MinCanvasSize = 16
	MaxCanvasSize = 16384
)

// ValidateCanvas checks that an output canvas is within sane bounds.
func ValidateCanvas(width, height int) error {
	if width < MinCanvasSize || height < MinCanvasSize {
		return New(ErrCodeInvalidInput, "canvas %dx%d too small (min %d)", width, height, MinCanvasSize)
	}
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return New(ErrCodeInvalidInput, "canvas %dx%d too large (max %d)", width, height, MaxCanvasSize)
	}
	return nil
}

// ValidateChartName validates a chart name used to derive output filenames.
// It rejects names that could escape the output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "chart name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "chart name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "chart name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "chart name cannot contain path separators")
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "chart name cannot be %q", name)
	}

	return nil
}

// ValidateOutputPath checks an output file path before anything is written.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains invalid characters")
	}
	if filepath.Base(path) == "." || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}
