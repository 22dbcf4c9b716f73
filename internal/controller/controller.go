// Package controller owns the prediction view state and the actions that change it.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/events"
	"github.com/vadiminshakov/predictor/internal/services/prediction"
	"go.uber.org/zap"
)

type executor interface {
	Execute(ctx context.Context, symbol domain.Symbol, mode domain.Mode) prediction.Outcome
}

type journal interface {
	Save(event domain.LookupEvent) error
}

type publisher interface {
	Publish(s events.Snapshot)
}

// Controller is the single owner of the displayed state.
// Every action cancels the request in flight and starts a new one;
// completions that are no longer current are discarded.
type Controller struct {
	l         *zap.Logger
	exec      executor
	journal   journal
	publisher publisher
	now       func() time.Time

	mu     sync.Mutex
	symbol domain.Symbol
	mode   domain.Mode
	state  domain.DisplayState
	seq    uint64
	cancel context.CancelFunc

	root context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// Option configures the Controller.
type Option func(*Controller)

// WithJournal appends every applied terminal state to j.
func WithJournal(j journal) Option {
	return func(c *Controller) {
		c.journal = j
	}
}

// WithPublisher sends a snapshot to p on every state change.
func WithPublisher(p publisher) Option {
	return func(c *Controller) {
		c.publisher = p
	}
}

// WithClock overrides the time source used for snapshots and journal entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a controller in the Idle state with symbol selected under mode.
func New(l *zap.Logger, exec executor, symbol domain.Symbol, mode domain.Mode, opts ...Option) *Controller {
	root, stop := context.WithCancel(context.Background())

	c := &Controller{
		l:      l,
		exec:   exec,
		now:    time.Now,
		symbol: symbol,
		mode:   mode,
		state:  domain.Idle(),
		root:   root,
		stop:   stop,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SelectSymbol makes symbol current and fetches its prediction under the current mode.
// The returned channel receives the applied terminal state, or is closed without a value
// if a newer action superseded this one.
func (c *Controller) SelectSymbol(symbol domain.Symbol) <-chan domain.DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.symbol = symbol
	return c.startLocked()
}

// Retry re-fetches the current symbol under the current mode.
func (c *Controller) Retry() <-chan domain.DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.startLocked()
}

// ToggleMode flips Live/Demo and re-fetches the current symbol under the new mode.
func (c *Controller) ToggleMode() <-chan domain.DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = c.mode.Toggle()
	c.l.Info("mode switched", zap.String("mode", c.mode.String()))
	return c.startLocked()
}

// State returns the current display state.
func (c *Controller) State() domain.DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the current mode.
func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Symbol returns the selected symbol.
func (c *Controller) Symbol() domain.Symbol {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symbol
}

// Snapshot returns everything a surface needs to render.
func (c *Controller) Snapshot() events.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels the request in flight and waits for its goroutine to finish.
func (c *Controller) Close() {
	c.stop()
	c.wg.Wait()
}

func (c *Controller) startLocked() <-chan domain.DisplayState {
	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	seq := c.seq
	symbol, mode := c.symbol, c.mode

	ctx, cancel := context.WithCancel(c.root)
	c.cancel = cancel
	c.state = domain.Loading()
	c.publishLocked()

	out := make(chan domain.DisplayState, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(out)
		defer cancel()

		outcome := c.exec.Execute(ctx, symbol, mode)
		if state, ok := c.apply(seq, outcome); ok {
			c.record(outcome, symbol, mode)
			out <- state
		}
	}()

	return out
}

// apply stores the outcome if seq is still the latest action.
func (c *Controller) apply(seq uint64, outcome prediction.Outcome) (domain.DisplayState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if outcome.Superseded || seq != c.seq {
		c.l.Debug("discarding stale prediction outcome",
			zap.String("request_id", outcome.RequestID),
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", c.seq))
		return domain.DisplayState{}, false
	}

	c.state = outcome.State
	c.cancel = nil
	c.publishLocked()

	return c.state, true
}

func (c *Controller) record(outcome prediction.Outcome, symbol domain.Symbol, mode domain.Mode) {
	if c.journal == nil {
		return
	}

	event := domain.NewLookupEvent(c.now(), outcome.RequestID, symbol, mode, outcome.State, outcome.Took)
	if err := c.journal.Save(event); err != nil {
		c.l.Warn("failed to journal lookup",
			zap.String("request_id", outcome.RequestID),
			zap.Error(err))
	}
}

func (c *Controller) publishLocked() {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() events.Snapshot {
	return events.Snapshot{
		Seq:       c.seq,
		Timestamp: c.now(),
		Symbol:    c.symbol,
		Mode:      c.mode,
		State:     c.state,
	}
}
