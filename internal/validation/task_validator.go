package validation

import (
	"strings"

	"github.com/google/uuid"
)

// TaskValidator provides validation for task titles and ids
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle validates a title for creation or rename
func (tv *TaskValidator) ValidateTitle(title string) error {
	if !tv.validator.IsNonEmptyString(title) {
		validationError := NewValidationError()
		validationError.AddRequiredError("title")
		return validationError
	}
	return nil
}

// GetValidTitle returns the trimmed title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimString(title), nil
}

// ParseTaskID parses a task id supplied as text
func (tv *TaskValidator) ParseTaskID(s string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError("id")
		return uuid.Nil, validationError
	}

	id, err := uuid.Parse(trimmed)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("id", s, "UUID such as 3f2b8c1e-9d4a-4c2b-8e7f-1a2b3c4d5e6f")
		return uuid.Nil, validationError
	}
	return id, nil
}

// ValidateIDPrefix validates a prefix used for bulk removal
func (tv *TaskValidator) ValidateIDPrefix(prefix string) error {
	if !tv.validator.IsValidIDPrefix(prefix) {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError("prefix", prefix, MinIDPrefixLength)
		return validationError
	}
	return nil
}
