package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPathLength bounds file paths accepted from flags, config and the API.
const maxPathLength = 1024

// ValidateFilePath validates a local file path (RAM dump, graph file, output
// file). Absolute paths are allowed; control characters are not.
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// targetNameRegex matches target names: lowercase words joined by dashes or
// underscores.
var targetNameRegex = regexp.MustCompile(`^[a-z0-9]+([-_][a-z0-9]+)*$`)

// ValidateTargetName validates the name of a configured route target.
func ValidateTargetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTarget, "target name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidTarget, "target name too long (max 64 characters)")
	}
	if !targetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTarget, "invalid target name: %q", name)
	}
	return nil
}

// ValidateDepth validates a breadth-first expansion depth.
func ValidateDepth(depth int) error {
	if depth < 0 {
		return New(ErrCodeInvalidInput, "depth must not be negative, got %d", depth)
	}
	return nil
}

// ValidateBackend validates a cache backend name against the allowed set.
func ValidateBackend(name string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(name, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "unknown cache backend %q (want one of %s)", name, strings.Join(allowed, ", "))
}
