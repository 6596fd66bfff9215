package validation

import (
	"strconv"
	"strings"
)

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

// IsPresent checks that an optional string was supplied at all
func (v *Validator) IsPresent(s *string) bool {
	return s != nil
}

// ParseID parses a base-10 identifier. Signs and surrounding whitespace are rejected.
func (v *Validator) ParseID(raw string) (int64, bool) {
	if raw == "" || raw != strings.TrimSpace(raw) {
		return 0, false
	}
	if raw[0] == '+' || raw[0] == '-' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
