package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims, strips tags and control characters, and escapes HTML.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	trimmed = stripHTML(trimmed)
	trimmed = removeControlChars(trimmed)
	return html.EscapeString(trimmed)
}

// SanitizeIdentifier is for caller-supplied ids such as device and patient ids:
// surrounding whitespace and control characters are dropped, nothing is escaped.
func SanitizeIdentifier(input string) string {
	return removeControlChars(strings.TrimSpace(input))
}

// stripHTML removes HTML tags from string
func stripHTML(input string) string {
	return htmlTag.ReplaceAllString(input, "")
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || r == ' ' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
