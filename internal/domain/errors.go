package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is raised locally, before any request is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TransportError means no response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerRejection means a response was received but it signals failure,
// either through the status code or through a body-level success flag.
type ServerRejection struct {
	StatusCode int
	Message    string
}

func (e *ServerRejection) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	if msg == "" {
		msg = "request rejected"
	}

	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, msg)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
