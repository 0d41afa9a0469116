package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTokenNotFound     = errors.New("token not found")
	ErrMissingFields     = errors.New("email and password are required")
	ErrInvalidRole       = errors.New("invalid role")
	ErrNoChanges         = errors.New("no changes to save")
	ErrOperationInFlight = errors.New("another operation is in flight")
)

// RequestError is a non-2xx response from the directory API, carrying the
// HTTP status and the server's error message when one was present in the body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}
