package validation

import "testing"

func strPtr(s string) *string { return &s }

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       *string
		expectError bool
	}{
		{"Valid title", strPtr("Write report"), false},
		{"Single character", strPtr("T"), false},
		{"Punctuation allowed", strPtr("Fix bug #42 (urgent)!"), false},
		{"Absent title", nil, true},
		{"Empty title", strPtr(""), true},
		{"Whitespace only", strPtr("   "), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTitle(tt.input)

			if !tt.expectError {
				if err != nil {
					t.Errorf("ValidateTitle() expected no error but got %v", err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateTitle() expected ValidationError but got %T", err)
			}
			if validationErr.Errors[0].Type != ErrorTypeRequired {
				t.Errorf("ValidateTitle() error type = %v, want %v", validationErr.Errors[0].Type, ErrorTypeRequired)
			}
			if validationErr.FirstMessage() != "title is required" {
				t.Errorf("ValidateTitle() message = %q", validationErr.FirstMessage())
			}
		})
	}
}

func TestTaskValidator_ValidateStatus(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       *string
		expectError bool
	}{
		{"Valid status", strPtr("done"), false},
		{"Free-form status", strPtr("waiting on review"), false},
		{"Absent status", nil, true},
		{"Empty status", strPtr(""), true},
		{"Whitespace status", strPtr(" \t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStatus(tt.input)

			if tt.expectError && err == nil {
				t.Errorf("ValidateStatus() expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateStatus() expected no error but got %v", err)
			}
			if err != nil && err.(*ValidationError).FirstMessage() != "status must not be blank" {
				t.Errorf("ValidateStatus() message = %q", err.(*ValidationError).FirstMessage())
			}
		})
	}
}

func TestTaskValidator_ParseTaskID(t *testing.T) {
	validator := NewTaskValidator()

	id, err := validator.ParseTaskID("12")
	if err != nil || id != 12 {
		t.Errorf("ParseTaskID(12) = %d, %v", id, err)
	}

	_, err = validator.ParseTaskID("twelve")
	validationErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("ParseTaskID(twelve) expected ValidationError but got %T", err)
	}
	if validationErr.FirstMessage() != "invalid task id" {
		t.Errorf("ParseTaskID(twelve) message = %q", validationErr.FirstMessage())
	}
}
