package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTimeout the live request did not complete before its deadline.
	ErrTimeout = errors.New("prediction request timed out")
	// ErrUnreachable no connection could be established to the prediction service.
	ErrUnreachable = errors.New("prediction service is unreachable")
	// ErrInvalid payload is malformed or misses a required field.
	ErrInvalid = errors.New("prediction payload is incomplete")
	// ErrNoData the data source has nothing for the symbol.
	ErrNoData = errors.New("no prediction data for symbol")
	// ErrSuperseded the request was cancelled by a newer action.
	ErrSuperseded = errors.New("prediction request superseded")
)

// RequestFailedError any other transport or status failure.
// Status is zero when no response was received.
type RequestFailedError struct {
	Status int
	Err    error
}

func (e *RequestFailedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("prediction request failed with status %d", e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("prediction request failed: %v", e.Err)
	}
	return "prediction request failed"
}

// Unwrap returns the underlying cause.
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}
