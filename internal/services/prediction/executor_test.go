package prediction

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/predictor/internal/clients"
	"github.com/vadiminshakov/predictor/internal/domain"
	"go.uber.org/zap"
)

type sourceMock struct {
	mock.Mock
}

func (m *sourceMock) Predict(ctx context.Context, symbol domain.Symbol) (domain.PredictionResult, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(domain.PredictionResult), args.Error(1)
}

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) ObserveLookup(mode domain.Mode, outcome string, took time.Duration) {
	m.Called(mode, outcome, took)
}

func TestNewExecutor_RequiresSources(t *testing.T) {
	_, err := NewExecutor(zap.NewNop(), nil, &sourceMock{})
	assert.Error(t, err)
}

func TestExecutor_DispatchesByMode(t *testing.T) {
	live := &sourceMock{}
	demo := &sourceMock{}
	rec := &recorderMock{}

	expected := DemoDataset()["BTCUSDT"]
	live.On("Predict", mock.Anything, domain.Symbol("BTCUSDT")).Return(domain.PredictionResult{}, domain.ErrUnreachable).Once()
	demo.On("Predict", mock.Anything, domain.Symbol("BTCUSDT")).Return(expected, nil).Once()
	rec.On("ObserveLookup", domain.ModeLive, "unreachable", mock.AnythingOfType("time.Duration")).Once()
	rec.On("ObserveLookup", domain.ModeDemo, "populated", mock.AnythingOfType("time.Duration")).Once()

	e, err := NewExecutor(zap.NewNop(), live, demo, WithRecorder(rec))
	require.NoError(t, err)

	state := e.Fetch(context.Background(), "BTCUSDT", domain.ModeLive)
	assert.Equal(t, domain.StateError, state.Kind())
	assert.Equal(t, MessageUnreachable, state.Message())

	out := e.Execute(context.Background(), "BTCUSDT", domain.ModeDemo)
	assert.False(t, out.Superseded)
	assert.NotEmpty(t, out.RequestID)
	got, ok := out.State.Result()
	require.True(t, ok)
	assert.True(t, got.Equal(expected))

	live.AssertExpectations(t)
	demo.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestExecutor_UnknownModeIsRequestFailure(t *testing.T) {
	e, err := NewExecutor(zap.NewNop(), &sourceMock{}, &sourceMock{})
	require.NoError(t, err)

	state := e.Fetch(context.Background(), "BTCUSDT", domain.Mode("paper"))
	assert.Equal(t, domain.FailureRequestFailed, state.Failure())
}

func TestExecutor_SupersededIsNotRecorded(t *testing.T) {
	live := &sourceMock{}
	rec := &recorderMock{}
	live.On("Predict", mock.Anything, domain.Symbol("BTCUSDT")).
		Return(domain.PredictionResult{}, errors.Wrap(domain.ErrSuperseded, "context canceled"))

	e, err := NewExecutor(zap.NewNop(), live, &sourceMock{}, WithRecorder(rec))
	require.NoError(t, err)

	out := e.Execute(context.Background(), "BTCUSDT", domain.ModeLive)
	assert.True(t, out.Superseded)
	rec.AssertNotCalled(t, "ObserveLookup", mock.Anything, mock.Anything, mock.Anything)
}

func newLiveExecutor(t *testing.T, baseURL string, timeout time.Duration) *Executor {
	t.Helper()
	live := NewLiveSource(clients.NewPredictionClient(baseURL, timeout))
	demo := NewDemoSource(DemoDataset(), 0, &instantDelayer{})
	e, err := NewExecutor(zap.NewNop(), live, demo)
	require.NoError(t, err)
	return e
}

func TestExecutor_LiveScenarios(t *testing.T) {
	t.Run("BTCUSDT with unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := srv.URL
		srv.Close()

		state := newLiveExecutor(t, addr, time.Second).Fetch(context.Background(), "BTCUSDT", domain.ModeLive)
		assert.Equal(t, domain.StateError, state.Kind())
		assert.Equal(t, domain.FailureUnreachable, state.Failure())
		assert.Equal(t, MessageUnreachable, state.Message())
	})

	t.Run("ETHUSDT answering after the deadline", func(t *testing.T) {
		var aborted atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
				aborted.Store(true)
			case <-time.After(6 * time.Second):
				fmt.Fprint(w, `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":3386.7}}`)
			}
		}))
		defer srv.Close()

		state := newLiveExecutor(t, srv.URL, 100*time.Millisecond).Fetch(context.Background(), "ETHUSDT", domain.ModeLive)
		assert.Equal(t, domain.StateError, state.Kind())
		assert.Equal(t, domain.FailureTimeout, state.Failure())
		assert.Equal(t, MessageTimeout, state.Message())
		assert.Eventually(t, aborted.Load, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("response without date is empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"symbol":"ETHUSDT","final_prediction":{"predicted_price_usdt":3386.7}}`)
		}))
		defer srv.Close()

		state := newLiveExecutor(t, srv.URL, time.Second).Fetch(context.Background(), "ETHUSDT", domain.ModeLive)
		assert.Equal(t, domain.StateEmpty, state.Kind())
	})

	t.Run("response without price is empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18"}}`)
		}))
		defer srv.Close()

		state := newLiveExecutor(t, srv.URL, time.Second).Fetch(context.Background(), "ETHUSDT", domain.ModeLive)
		assert.Equal(t, domain.StateEmpty, state.Kind())
	})

	t.Run("server error keeps status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		state := newLiveExecutor(t, srv.URL, time.Second).Fetch(context.Background(), "ETHUSDT", domain.ModeLive)
		assert.Equal(t, domain.FailureRequestFailed, state.Failure())
		assert.Equal(t, http.StatusBadGateway, state.Status())
		assert.Equal(t, MessageRequestFailed, state.Message())
	})

	t.Run("valid response is populated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":3386.7}}`)
		}))
		defer srv.Close()

		state := newLiveExecutor(t, srv.URL, time.Second).Fetch(context.Background(), "ETHUSDT", domain.ModeLive)
		got, ok := state.Result()
		require.True(t, ok)
		assert.True(t, got.Equal(DemoDataset()["ETHUSDT"]))
	})
}

func TestExecutor_DemoScenarios(t *testing.T) {
	e := newLiveExecutor(t, "http://127.0.0.1:1", time.Second)

	state := e.Fetch(context.Background(), "DOGEBTC", domain.ModeDemo)
	got, ok := state.Result()
	require.True(t, ok)
	assert.Equal(t, "0.00000245", got.FinalPrediction.PredictedPriceUSDT.String())
	assert.Equal(t, "2026-05-18", got.FinalPrediction.Date.String())

	state = e.Fetch(context.Background(), "SOLUSDT", domain.ModeDemo)
	assert.Equal(t, domain.StateEmpty, state.Kind())
}
