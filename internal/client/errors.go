package client

import (
	"errors"
	"fmt"
)

var (
	ErrInitializationTimeout = errors.New("access control did not become ready")
	ErrNotAuthenticated      = errors.New("respondent is not logged in")
	ErrMalformedResponse     = errors.New("malformed response")
	ErrSubmitInFlight        = errors.New("submission already in flight")
	ErrAlreadySubmitted      = errors.New("survey already submitted")
)

// User-facing messages.
const (
	MsgInitializationTimeout = "Failed to initialize access control. Please refresh the page."
	MsgLoginRequired         = "Please log in to view your responses."
	MsgLoadFailed            = "Failed to load responses"
	MsgTransportFailure      = "Error loading responses. Please try again later."
	MsgMalformedResponse     = "Invalid response format received."
	MsgSubmitFailed          = "An error occurred. Please try again."
)

// TransportError is a network or protocol level failure.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a `success: false` answer from the server.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "application error"
	}
	return e.Message
}

// UserMessage maps an error to the text shown to the respondent.
// fallback is used for application errors without a message.
func UserMessage(err error, fallback string) string {
	var appErr *ApplicationError
	var transportErr *TransportError
	switch {
	case errors.Is(err, ErrInitializationTimeout):
		return MsgInitializationTimeout
	case errors.Is(err, ErrNotAuthenticated):
		return MsgLoginRequired
	case errors.Is(err, ErrMalformedResponse):
		return MsgMalformedResponse
	case errors.As(err, &appErr):
		if appErr.Message != "" {
			return appErr.Message
		}
		return fallback
	case errors.As(err, &transportErr):
		return MsgTransportFailure
	default:
		return fallback
	}
}
