package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for local precondition failures.
var (
	ErrEmptyInput = errors.New("empty product input")
	ErrNoProduct  = errors.New("no product loaded")
	ErrNoReviews  = errors.New("no reviews to export")
)

// ValidationError is a local precondition failure. No request was sent.
type ValidationError struct {
	// Message is the localized text shown to the user.
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// ServerError is a failure reported by the backend: a non-2xx status or
// a body carrying an "error" field.
type ServerError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return e.Detail()
	}
	return e.Message
}

// Detail includes the endpoint and status for logs.
func (e *ServerError) Detail() string {
	return fmt.Sprintf("server error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// TransportError wraps network and decode failures. The user sees the
// underlying error's message.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error for " + e.Endpoint
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExportError wraps failures while delivering an exported file.
type ExportError struct {
	Sink string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error (%s): %v", e.Sink, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// UserMessage returns the single string shown in the error region.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
