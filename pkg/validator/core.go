package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field failure with translation metadata.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is a collection of field failures that satisfies error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// First returns the first failure recorded for field.
func (ve ValidationErrors) First(field string) (ValidationError, bool) {
	for _, err := range ve {
		if err.Field == field {
			return err, true
		}
	}
	return ValidationError{}, false
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and aggregates the failures. It returns nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Optional skips rule when value is blank.
func Optional(value string, rule Rule) Rule {
	check := rule.Check
	rule.Check = func() bool {
		return strings.TrimSpace(value) == "" || check()
	}
	return rule
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}

func newError(field, message, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
