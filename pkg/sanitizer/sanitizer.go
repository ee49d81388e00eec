package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// Apply runs transforms over value in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose stores a transform chain for reuse.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// SingleLine collapses line breaks and repeated whitespace into single spaces.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters but keeps newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// NormalizeNewlines converts CRLF and CR to LF and squeezes runs of blank lines.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return blankLinesRegex.ReplaceAllString(s, "\n\n")
}

// MaxLength truncates s to maxLen runes.
func MaxLength(maxLen int) func(string) string {
	return func(s string) string {
		if maxLen <= 0 {
			return ""
		}
		runes := []rune(s)
		if len(runes) <= maxLen {
			return s
		}
		return string(runes[:maxLen])
	}
}
