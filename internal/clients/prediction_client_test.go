package clients

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
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/predictor/internal/domain"
)

func TestPredictionClient_Predict(t *testing.T) {
	t.Run("returns body and sends symbol query", func(t *testing.T) {
		var gotPath, gotSymbol string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotSymbol = r.URL.Query().Get("symbol")
			fmt.Fprint(w, `{"symbol":"BTCUSDT"}`)
		}))
		defer srv.Close()

		c := NewPredictionClient(srv.URL+"/", time.Second)
		body, err := c.Predict(context.Background(), "BTCUSDT")
		require.NoError(t, err)
		assert.JSONEq(t, `{"symbol":"BTCUSDT"}`, string(body))
		assert.Equal(t, "/predict", gotPath)
		assert.Equal(t, "BTCUSDT", gotSymbol)
	})

	t.Run("non success status keeps the code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid symbol", http.StatusBadRequest)
		}))
		defer srv.Close()

		_, err := NewPredictionClient(srv.URL, time.Second).Predict(context.Background(), "NOPE")
		require.Error(t, err)

		var failed *domain.RequestFailedError
		require.True(t, errors.As(err, &failed))
		assert.Equal(t, http.StatusBadRequest, failed.Status)
	})

	t.Run("deadline aborts the request", func(t *testing.T) {
		var aborted atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
				aborted.Store(true)
			case <-time.After(6 * time.Second):
				fmt.Fprint(w, `{}`)
			}
		}))
		defer srv.Close()

		start := time.Now()
		_, err := NewPredictionClient(srv.URL, 50*time.Millisecond).Predict(context.Background(), "ETHUSDT")
		assert.ErrorIs(t, err, domain.ErrTimeout)
		assert.Less(t, time.Since(start), 3*time.Second)

		assert.Eventually(t, aborted.Load, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("closed server is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := srv.URL
		srv.Close()

		_, err := NewPredictionClient(addr, time.Second).Predict(context.Background(), "BTCUSDT")
		assert.ErrorIs(t, err, domain.ErrUnreachable)
	})

	t.Run("caller cancellation is reported as superseded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := NewPredictionClient(srv.URL, time.Second).Predict(ctx, "BTCUSDT")
		assert.ErrorIs(t, err, domain.ErrSuperseded)
		assert.NotErrorIs(t, err, domain.ErrTimeout)
	})
}

func TestNewPredictionClient_DefaultTimeout(t *testing.T) {
	c := NewPredictionClient("http://127.0.0.1:8000", 0)
	assert.Equal(t, 5*time.Second, c.Timeout())
}
