package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "title", Message: "is required"}}, "validation error for field 'title': is required"},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "id", Message: "has invalid format"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Errorf("new ValidationError should have no errors")
	}

	ve.AddRequiredError("title")
	if !ve.HasErrors() {
		t.Errorf("ValidationError should report errors after AddRequiredError")
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidFormatError("id", "xyz", "UUID")
	ve.AddInvalidLengthError("prefix", "ab", 4)
	ve.AddInvalidValueError("format", "xml", "unsupported")

	expected := []struct {
		field   string
		errType ValidationErrorType
		message string
	}{
		{"title", ErrorTypeRequired, "title is required"},
		{"id", ErrorTypeInvalidFormat, "id has invalid format, expected: UUID"},
		{"prefix", ErrorTypeInvalidLength, "prefix must be at least 4 characters long"},
		{"format", ErrorTypeInvalidValue, "format has invalid value: unsupported"},
	}

	if len(ve.Errors) != len(expected) {
		t.Fatalf("expected %d errors, got %d", len(expected), len(ve.Errors))
	}
	for i, want := range expected {
		got := ve.Errors[i]
		if got.Field != want.field || got.Type != want.errType || got.Message != want.message {
			t.Errorf("error %d = %+v, want field=%s type=%s message=%q", i, got, want.field, want.errType, want.message)
		}
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidFormatError("id", "x", "UUID")
	ve.AddInvalidValueError("title", "", "blank")

	if got := len(ve.GetFieldErrors("title")); got != 2 {
		t.Errorf("GetFieldErrors(title) returned %d errors, expected 2", got)
	}
	if got := len(ve.GetFieldErrors("missing")); got != 0 {
		t.Errorf("GetFieldErrors(missing) returned %d errors, expected 0", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("empty message = %q", got)
	}

	ve.AddRequiredError("title")
	if got := ve.GetUserFriendlyMessage(); got != "title is required" {
		t.Errorf("single message = %q", got)
	}

	ve.AddInvalidFormatError("id", "x", "UUID")
	got := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(got, "Multiple validation errors occurred:\n") || !strings.Contains(got, "- title is required") {
		t.Errorf("multiple message = %q", got)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()

	if !IsValidationError(ve) {
		t.Errorf("IsValidationError should be true for *ValidationError")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Errorf("IsValidationError should see through wrapping")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Errorf("IsValidationError should be false for other errors")
	}
}
