package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MaxLenString limits the length of value in runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length", map[string]any{"max": max}),
	}
}

// ValidEmail validates a bare address (no display name) with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
				return false
			}
			if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// OneOf validates that value is one of options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(options, value)
		},
		Error: newError(field, "must be one of the allowed values", "validation.one_of",
			map[string]any{"options": options}),
	}
}
