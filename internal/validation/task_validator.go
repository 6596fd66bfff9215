package validation

// Field names as they appear on the wire.
const (
	FieldTitle  = "title"
	FieldStatus = "status"
	FieldID     = "id"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle requires a present, non-blank title.
// Absent and blank titles produce the same "title is required" message.
func (tv *TaskValidator) ValidateTitle(title *string) error {
	if !tv.validator.IsPresent(title) || !tv.validator.IsNonEmptyString(*title) {
		validationError := NewValidationError()
		validationError.AddRequiredError(FieldTitle)
		return validationError
	}
	return nil
}

// ValidateStatus requires a present, non-blank status for status updates.
func (tv *TaskValidator) ValidateStatus(status *string) error {
	if !tv.validator.IsPresent(status) || !tv.validator.IsNonEmptyString(*status) {
		validationError := NewValidationError()
		var value interface{}
		if status != nil {
			value = *status
		}
		validationError.AddBlankError(FieldStatus, value)
		return validationError
	}
	return nil
}

// ParseTaskID parses a task identifier taken from a path or argument.
func (tv *TaskValidator) ParseTaskID(raw string) (int64, error) {
	id, ok := tv.validator.ParseID(raw)
	if !ok {
		validationError := NewValidationError()
		validationError.AddError(FieldID, ErrorTypeInvalidFormat, "invalid task id", raw)
		return 0, validationError
	}
	return id, nil
}
