package model

import "strings"

// ValidationError carries the itemized field messages for a rejected request
// body. Handlers unwrap it with errors.As and return the list verbatim.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
