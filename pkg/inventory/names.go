package inventory

import (
	"regexp"
	"strings"
)

var invalidGroupChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeGroupName converts an arbitrary name into a valid inventory
// group name: lowercase, [a-z0-9_]+ and never starting with a digit.
// Sanitizing an already sanitized name is a no-op.
func SanitizeGroupName(name string) string {
	sanitized := invalidGroupChars.ReplaceAllString(name, "_")

	if sanitized != "" && sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "_" + sanitized
	}

	return strings.ToLower(sanitized)
}
