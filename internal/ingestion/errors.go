// Package ingestion provides the resume upload guard and the state machine
// that reconciles an asynchronous extraction result with the manual flow.
package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid resume pipeline transition")
	// ErrStaleUpload is returned when a result arrives for an attempt that has been superseded.
	ErrStaleUpload = errors.New("upload attempt superseded")
)

// ExtractionError records why an upload attempt ended in StateFailed.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
