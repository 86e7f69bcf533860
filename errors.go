package reqkit

import (
	"errors"
	"fmt"
)

// Error type identifiers carried by ClientError.
const (
	ErrorTypeValidation = "Validation"
	ErrorTypeQuery      = "Query"
	ErrorTypeRequest    = "Request"
	ErrorTypeBody       = "Body"
)

// RequestErrorName classifies errors built from a failed response, as opposed
// to transport or programming errors.
const RequestErrorName = "RequestError"

// Sentinel errors for common failure scenarios
var (
	// ErrUnsupportedQueryValue is the cause of a ClientError for a query value
	// that is neither a scalar nor a flat list of scalars.
	ErrUnsupportedQueryValue = errors.New("reqkit: unsupported query value")

	// ErrInvalidBody is returned when OptBody holds a type NewRequest cannot send.
	ErrInvalidBody = errors.New("reqkit: invalid request body")
)

// ClientError reports a problem preparing a request, before anything is sent.
type ClientError struct {
	Type    string
	Message string
	Cause   error
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// RequestError describes a response the server answered with a failure
// status. Name is always RequestErrorName.
type RequestError struct {
	StatusCode int
	Message    string
	Name       string
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// AsRequestError finds the first RequestError in err's chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
