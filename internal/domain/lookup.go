package domain

import "time"

// LookupEvent outcome of one finished prediction request.
type LookupEvent struct {
	Timestamp time.Time         `json:"ts"`
	RequestID string            `json:"request_id"`
	Symbol    Symbol            `json:"symbol"`
	Mode      Mode              `json:"mode"`
	Kind      string            `json:"kind"`
	Failure   FailureKind       `json:"failure,omitempty"`
	Status    int               `json:"status,omitempty"`
	Message   string            `json:"message,omitempty"`
	Result    *PredictionResult `json:"result,omitempty"`
	Duration  time.Duration     `json:"duration_ns"`
}

// NewLookupEvent creates a LookupEvent from a terminal state.
func NewLookupEvent(ts time.Time, requestID string, symbol Symbol, mode Mode, state DisplayState, took time.Duration) LookupEvent {
	event := LookupEvent{
		Timestamp: ts,
		RequestID: requestID,
		Symbol:    symbol,
		Mode:      mode,
		Kind:      state.Kind().String(),
		Failure:   state.Failure(),
		Status:    state.Status(),
		Message:   state.Message(),
		Duration:  took,
	}
	if result, ok := state.Result(); ok {
		event.Result = &result
	}
	return event
}

// LookupEventRecord bundles a lookup event with its journal index.
type LookupEventRecord struct {
	Index uint64
	Event LookupEvent
}
