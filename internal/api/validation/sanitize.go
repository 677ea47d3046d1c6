package validation

import "github.com/microcosm-cc/bluemonday"

// sanitizer strips all HTML from free-text input before it reaches
// persistence. Sanitized values pass through storage unchanged.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize returns s with any HTML markup removed.
func Sanitize(s string) string {
	return sanitizer.Sanitize(s)
}
