package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrValidation indicates bad input rejected before any network call
// (unsupported file type, oversized file, empty content).
type ErrValidation struct {
	Field  string
	Reason string
}

func (e *ErrValidation) Error() string {
	return e.Reason
}

// ErrTimeout indicates the call's deadline expired before the service
// answered.
type ErrTimeout struct {
	Op    string
	After time.Duration
	Hint  string
	Err   error
}

func (e *ErrTimeout) Error() string {
	msg := fmt.Sprintf("%s timed out after %s.", opLabel(e.Op), formatBound(e.After))
	if e.Hint != "" {
		msg += " " + e.Hint
	}
	return msg
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// formatBound prints whole-second bounds as "60 seconds" and anything
// finer as a duration, so sub-second bounds never read as zero.
func formatBound(d time.Duration) string {
	if d >= time.Second && d%time.Second == 0 {
		n := int(d / time.Second)
		if n == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", n)
	}
	if d >= time.Second {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Millisecond).String()
}

// ErrConnection indicates a transport-level failure: the service is
// unreachable, or /health answered with a non-success status.
type ErrConnection struct {
	BaseURL string
	Status  int // non-zero only when the service answered
	Err     error
}

func (e *ErrConnection) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Backend at %s responded with status %d.", e.BaseURL, e.Status)
	}
	return fmt.Sprintf("Cannot connect to backend at %s. Make sure the server is running.", e.BaseURL)
}

func (e *ErrConnection) Unwrap() error { return e.Err }

// ErrRemote carries the error message returned by the service alongside a
// non-success HTTP status.
type ErrRemote struct {
	Op     string
	Status int
	Detail string
}

func (e *ErrRemote) Error() string {
	return e.Detail
}

// ErrEmptyResult indicates a successful reply with nothing in it.
type ErrEmptyResult struct {
	Op string
}

func (e *ErrEmptyResult) Error() string {
	switch e.Op {
	case OpGenerateQuiz:
		return "No questions generated"
	case OpGenerateSummary:
		return "No summary sections generated"
	}
	return fmt.Sprintf("%s returned no results", opLabel(e.Op))
}

// ErrInvalidResponse indicates a successful reply whose body does not match
// the expected shape.
type ErrInvalidResponse struct {
	Op      string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Op, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
