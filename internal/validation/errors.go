// Package validation provides the per-step gate that decides whether the
// wizard may move forward or submit.
package validation

import "fmt"

// InputError is a locally detected problem with user input. It never reaches
// the network and needs no retry: the user corrects the field and continues.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
