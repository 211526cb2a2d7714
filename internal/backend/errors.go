package backend

import "fmt"

// Error is a transport-level failure: the request could not be made, the
// service answered with a non-success status, or the payload was malformed.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.URL, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s %s: HTTP %d: %s", e.Op, e.URL, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ServiceError is a business error reported in the body of an otherwise
// successful response. Callers recover from it exactly as from *Error.
type ServiceError struct {
	Op      string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: service error: %s", e.Op, e.Message)
}
