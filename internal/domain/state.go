package domain

import (
	"encoding/json"
)

// StateKind active variant of a DisplayState.
type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateError
	StatePopulated
	StateEmpty
)

// String returns the string representation of the kind.
func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StatePopulated:
		return "populated"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FailureKind classification of an Error state.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureTimeout       FailureKind = "timeout"
	FailureUnreachable   FailureKind = "unreachable"
	FailureRequestFailed FailureKind = "request_failed"
)

// DisplayState what the presentation layer renders. Exactly one variant is active:
// Message and Failure are set only for StateError, Result only for StatePopulated.
type DisplayState struct {
	kind    StateKind
	message string
	failure FailureKind
	status  int
	result  *PredictionResult
}

// Idle state before any fetch was attempted.
func Idle() DisplayState {
	return DisplayState{kind: StateIdle}
}

// Loading state while a request is in flight.
func Loading() DisplayState {
	return DisplayState{kind: StateLoading}
}

// Empty state when the source has no data for the symbol.
func Empty() DisplayState {
	return DisplayState{kind: StateEmpty}
}

// Populated state carrying a validated result.
func Populated(result PredictionResult) DisplayState {
	return DisplayState{kind: StatePopulated, result: &result}
}

// Failed state carrying a user facing message. Status is kept for diagnostics only.
func Failed(failure FailureKind, message string, status int) DisplayState {
	return DisplayState{kind: StateError, failure: failure, message: message, status: status}
}

// Kind returns the active variant.
func (s DisplayState) Kind() StateKind {
	return s.kind
}

// Message returns the error message of an Error state.
func (s DisplayState) Message() string {
	return s.message
}

// Failure returns the failure classification of an Error state.
func (s DisplayState) Failure() FailureKind {
	return s.failure
}

// Status returns the HTTP status retained for a failed request, zero otherwise.
func (s DisplayState) Status() int {
	return s.status
}

// Result returns the prediction of a Populated state.
func (s DisplayState) Result() (PredictionResult, bool) {
	if s.kind != StatePopulated || s.result == nil {
		return PredictionResult{}, false
	}
	return *s.result, true
}

// IsTerminal reports whether the state is an outcome of a finished request.
func (s DisplayState) IsTerminal() bool {
	return s.kind == StateError || s.kind == StatePopulated || s.kind == StateEmpty
}

type displayStateJSON struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message,omitempty"`
	Failure FailureKind       `json:"failure,omitempty"`
	Status  int               `json:"status,omitempty"`
	Result  *PredictionResult `json:"result,omitempty"`
}

// MarshalJSON encodes the state as {"kind": ..., ...}.
func (s DisplayState) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayStateJSON{
		Kind:    s.kind.String(),
		Message: s.message,
		Failure: s.failure,
		Status:  s.status,
		Result:  s.result,
	})
}
