// Package session owns one wizard run: the form, the step controller, the
// resume pipeline and every collaborator call. All mutation goes through a
// Session, which serializes it.
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitPending is returned when a submission is already in flight.
	ErrSubmitPending = errors.New("submission already in progress")
	// ErrNoGoal is returned for goal actions when no requirements are loaded.
	ErrNoGoal = errors.New("no career goal requirements loaded")
	// ErrStaleGoal is returned when a goal lookup was superseded by a newer one.
	ErrStaleGoal = errors.New("goal lookup superseded")
)

// UnavailableError is returned when an operation needs a collaborator the
// session was built without.
type UnavailableError struct {
	Collaborator string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Collaborator)
}
