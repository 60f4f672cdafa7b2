package models

import "fmt"

// ErrInvalidLabels represents label selectors that are not valid label keys
// or values
type ErrInvalidLabels struct {
	Reason string
}

func (e *ErrInvalidLabels) Error() string {
	return fmt.Sprintf("invalid label selectors: %s", e.Reason)
}

// NewErrInvalidLabels creates a new ErrInvalidLabels
func NewErrInvalidLabels(reason string) *ErrInvalidLabels {
	return &ErrInvalidLabels{Reason: reason}
}

// IsValidationError checks if an error was caused by invalid request input
func IsValidationError(err error) bool {
	_, ok := err.(*ErrInvalidLabels)
	return ok
}
