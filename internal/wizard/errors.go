// Package wizard implements the step-navigation state machine of the
// questionnaire, including branch-aware back navigation.
package wizard

import "errors"

var (
	// ErrStepInvalid is returned when the current step fails its gate.
	ErrStepInvalid = errors.New("current step is incomplete")
	// ErrAtLastStep is returned when advancing past the final step.
	ErrAtLastStep = errors.New("already at the last step")
	// ErrNotAtLastStep is returned when submitting before the final step.
	ErrNotAtLastStep = errors.New("submission is only available on the last step")
	// ErrNoHistory is returned when retreating from the first visited step.
	ErrNoHistory = errors.New("no earlier step to return to")
	// ErrSubmitted is returned for any navigation after submission.
	ErrSubmitted = errors.New("wizard already submitted")
	// ErrOutOfRange is returned for a jump to a step that does not exist.
	ErrOutOfRange = errors.New("step out of range")
	// ErrUnexpectedEvent is returned when an event is not allowed in the current state.
	ErrUnexpectedEvent = errors.New("event not allowed in current state")
)
