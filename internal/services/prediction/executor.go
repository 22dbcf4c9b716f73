package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/internal/domain"
	"go.uber.org/zap"
)

type source interface {
	Predict(ctx context.Context, symbol domain.Symbol) (domain.PredictionResult, error)
}

type recorder interface {
	ObserveLookup(mode domain.Mode, outcome string, took time.Duration)
}

// Outcome result of one executed request.
type Outcome struct {
	RequestID string
	State     domain.DisplayState
	Took      time.Duration
	// Superseded is set when the request was cancelled by its caller; State must not be applied.
	Superseded bool
}

// Executor dispatches lookups to the source of the requested mode.
type Executor struct {
	l       *zap.Logger
	sources map[domain.Mode]source
	metrics recorder
	now     func() time.Time
}

// Option configures the Executor.
type Option func(*Executor)

// WithRecorder reports every finished lookup to r.
func WithRecorder(r recorder) Option {
	return func(e *Executor) {
		e.metrics = r
	}
}

// NewExecutor creates an executor serving live and demo lookups.
func NewExecutor(l *zap.Logger, live, demo source, opts ...Option) (*Executor, error) {
	if live == nil || demo == nil {
		return nil, errors.New("both live and demo sources are required")
	}

	e := &Executor{
		l: l,
		sources: map[domain.Mode]source{
			domain.ModeLive: live,
			domain.ModeDemo: demo,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Fetch runs one lookup and returns the state to display.
func (e *Executor) Fetch(ctx context.Context, symbol domain.Symbol, mode domain.Mode) domain.DisplayState {
	return e.Execute(ctx, symbol, mode).State
}

// Execute runs one lookup and reports its outcome with diagnostics.
func (e *Executor) Execute(ctx context.Context, symbol domain.Symbol, mode domain.Mode) Outcome {
	requestID := uuid.NewString()
	l := e.l.With(
		zap.String("request_id", requestID),
		zap.String("symbol", symbol.String()),
		zap.String("mode", mode.String()),
	)

	src, ok := e.sources[mode]
	if !ok {
		err := &domain.RequestFailedError{Err: fmt.Errorf("unsupported mode %q", mode)}
		l.Error("cannot dispatch prediction request", zap.Error(err))
		return Outcome{RequestID: requestID, State: Project(domain.PredictionResult{}, err)}
	}

	l.Debug("prediction request started")
	start := e.now()
	result, err := src.Predict(ctx, symbol)
	took := e.now().Sub(start)

	if errors.Is(err, domain.ErrSuperseded) || (err != nil && ctx.Err() != nil) {
		l.Debug("prediction request superseded", zap.Duration("took", took))
		return Outcome{RequestID: requestID, State: domain.Loading(), Took: took, Superseded: true}
	}

	state := Project(result, err)
	outcome := outcomeLabel(state)

	switch state.Kind() {
	case domain.StateError:
		l.Warn("prediction request failed",
			zap.String("outcome", outcome),
			zap.Int("status", state.Status()),
			zap.Duration("took", took),
			zap.Error(err))
	case domain.StateEmpty:
		l.Info("no prediction data", zap.Duration("took", took), zap.NamedError("reason", err))
	default:
		l.Info("prediction received", zap.Duration("took", took))
	}

	if e.metrics != nil {
		e.metrics.ObserveLookup(mode, outcome, took)
	}

	return Outcome{RequestID: requestID, State: state, Took: took}
}

func outcomeLabel(state domain.DisplayState) string {
	if state.Kind() == domain.StateError {
		return string(state.Failure())
	}
	return state.Kind().String()
}
