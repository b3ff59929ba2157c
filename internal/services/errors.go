package services

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCityNotFound        = errors.New("city not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrRenderingEmpty      = errors.New("rendering produced no output")
)

// Error carries a user-facing message and unwraps to one of the sentinel
// kinds above (and to the upstream cause, when there is one).
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func invalidInput(message string) *Error {
	return newError(ErrInvalidInput, message, nil)
}
