package utils

import (
	"strings"
)

func isIdentifierChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	}

	return false
}

// Maps an arbitrary display name to a valid C identifier fragment.
// Runs of characters that cannot appear in a C identifier are collapsed into
// a single underscore, and a leading digit is prefixed with an underscore.
// Two sibling names that differ in more than separators never collide.
func CSanitize(name string) string {
	var builder strings.Builder

	lastWasSeparator := false

	for _, c := range strings.TrimSpace(name) {
		if isIdentifierChar(c) {
			builder.WriteRune(c)
			lastWasSeparator = false
		} else if !lastWasSeparator {
			builder.WriteByte('_')
			lastWasSeparator = true
		}
	}

	result := builder.String()

	if len(result) > 0 && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}

	return result
}
