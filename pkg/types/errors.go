package types

import (
	"errors"
	"fmt"
)

// MaxErrorBodyLength caps how much of a failed response body is kept for diagnostics
const MaxErrorBodyLength = 300

var (
	// ErrEmptyTicket is returned when the ticket text is empty after trimming
	ErrEmptyTicket = errors.New("paste a ticket description first")

	// ErrMissingCredential is returned when the remote strategy is selected without an API key
	ErrMissingCredential = errors.New("no API key set: disable AI mode or provide a key")
)

// TransportError is a non-success HTTP response from the remote endpoint
type TransportError struct {
	StatusCode int
	Body       string
}

// NewTransportError builds a TransportError, keeping at most MaxErrorBodyLength characters of body
func NewTransportError(statusCode int, body []byte) *TransportError {
	return &TransportError{
		StatusCode: statusCode,
		Body:       Truncate(string(body), MaxErrorBodyLength),
	}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("OpenAI error (%d): %s", e.StatusCode, e.Body)
}

// ParseError means the model output could not be coerced into a triage object
type ParseError struct {
	// Output is the text blob extracted from the response
	Output string
	Err    error
}

func (e *ParseError) Error() string {
	return "could not parse JSON from model output"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Truncate returns at most n characters of s
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
