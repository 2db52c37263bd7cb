// Package validation provides request validation: a fluent field validator,
// struct-tag validation, and the storage-address rules for inbound
// interaction URLs.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skillsenselab/insightd/internal/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// NonEmptyList checks that a string list has at least one entry.
func (v *Validator) NonEmptyList(field string, values []string) *Validator {
	if len(values) == 0 {
		v.AddError(field, "must not be empty")
	}
	return v
}

// EachNonBlank checks that every entry in a string list is non-blank.
func (v *Validator) EachNonBlank(field string, values []string) *Validator {
	for i, val := range values {
		if strings.TrimSpace(val) == "" {
			v.AddError(fmt.Sprintf("%s[%d]", field, i), "must not be blank")
		}
	}
	return v
}

// BucketName checks a storage container name against the provider's naming
// rules: length 3-63, lowercase alphanumeric with "." and "-", no leading or
// trailing punctuation, no adjacent dots, not shaped like an IP address, and
// no reserved prefix or suffix.
func (v *Validator) BucketName(field, value string) *Validator {
	if msg := bucketNameError(value); msg != "" {
		v.AddError(field, msg)
	}
	return v
}

var (
	bucketCharsRe = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)
	ipShapeRe     = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
)

// Reserved bucket name affixes the storage provider refuses.
var (
	reservedBucketPrefixes = []string{"xn--", "sthree-"}
	reservedBucketSuffixes = []string{"-s3alias", "--ol-s3"}
)

// ValidBucketName reports whether a storage container name is valid.
func ValidBucketName(name string) bool {
	return bucketNameError(name) == ""
}

func bucketNameError(name string) string {
	if len(name) < 3 || len(name) > 63 {
		return "must be between 3 and 63 characters"
	}
	if !bucketCharsRe.MatchString(name) {
		return "must be lowercase alphanumeric with '.' or '-', and must start and end with a letter or digit"
	}
	if strings.Contains(name, "..") {
		return "must not contain adjacent dots"
	}
	if ipShapeRe.MatchString(name) {
		return "must not be formatted like an IP address"
	}
	for _, p := range reservedBucketPrefixes {
		if strings.HasPrefix(name, p) {
			return fmt.Sprintf("must not start with the reserved prefix %q", p)
		}
	}
	for _, s := range reservedBucketSuffixes {
		if strings.HasSuffix(name, s) {
			return fmt.Sprintf("must not end with the reserved suffix %q", s)
		}
	}
	return ""
}
