package domain

import "fmt"

// ValidationError reports a missing or malformed field on input.
// Callers must fix the input before retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// ConflictError reports a uniqueness violation, naming the conflicting field.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a game with %s %q already exists", e.Field, e.Value)
}
