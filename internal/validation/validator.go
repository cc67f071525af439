package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinIDPrefixLength is the shortest id prefix accepted for bulk removal.
const MinIDPrefixLength = 4

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskID checks if s parses as a task id
func (v *Validator) IsValidTaskID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// IsValidIDPrefix checks if a prefix is long enough for prefix removal
func (v *Validator) IsValidIDPrefix(prefix string) bool {
	return utf8.RuneCountInString(prefix) >= MinIDPrefixLength
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
