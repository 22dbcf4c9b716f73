package internal

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/predictor/config"
	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/services/catalog"
	"github.com/vadiminshakov/predictor/internal/services/prediction"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		APIURL:         "http://127.0.0.1:8000",
		RequestTimeout: 5 * time.Second,
		DemoDelay:      time.Millisecond,
		Mode:           domain.ModeDemo,
		Symbol:         "DOGEBTC",
		CatalogSource:  config.CatalogStatic,
		JournalDir:     t.TempDir(),
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := newCatalog(config.CatalogStatic, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &catalog.Static{}, c)

	c, err = newCatalog(config.CatalogBinance, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &catalog.Binance{}, c)

	_, err = newCatalog("coingecko", nil, zap.NewNop())
	assert.Error(t, err)
}

func TestPredictor_RunOnceDemo(t *testing.T) {
	p, err := NewPredictor(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	var out bytes.Buffer
	require.NoError(t, p.RunOnce(context.Background(), &out))

	assert.Contains(t, out.String(), "DOGEBTC (demo)")
	assert.Contains(t, out.String(), "$0.00000245")
	assert.Contains(t, out.String(), "May 18, 2026")
	assert.Contains(t, out.String(), "Sample data for demonstration")

	assert.Equal(t, uint64(1), p.journal.CurrentIndex())
	records, err := p.journal.EventsAfter(0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "populated", records[0].Event.Kind)
}

func TestPredictor_RunOnceDemoMiss(t *testing.T) {
	conf := testConfig(t)
	conf.Symbol = "SOLUSDT"
	conf.JournalDir = ""

	p, err := NewPredictor(conf, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	var out bytes.Buffer
	require.NoError(t, p.RunOnce(context.Background(), &out))
	assert.Contains(t, out.String(), "No data available")
	assert.Contains(t, out.String(), "No sample data for this symbol")
}

func TestPredictor_RunOnceLive(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := srv.URL
		srv.Close()

		conf := testConfig(t)
		conf.Mode = domain.ModeLive
		conf.Symbol = "BTCUSDT"
		conf.APIURL = addr

		p, err := NewPredictor(conf, zap.NewNop())
		require.NoError(t, err)
		defer p.Close()

		var out bytes.Buffer
		err = p.RunOnce(context.Background(), &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), prediction.MessageUnreachable)
		assert.Contains(t, out.String(), prediction.MessageUnreachable)
		assert.Contains(t, out.String(), "Try selecting a different symbol or enable demo mode")
	})

	t.Run("populated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"symbol":%q,"final_prediction":{"date":"2026-05-18","predicted_price_usdt":3386.7}}`,
				r.URL.Query().Get("symbol"))
		}))
		defer srv.Close()

		conf := testConfig(t)
		conf.Mode = domain.ModeLive
		conf.Symbol = "ETHUSDT"
		conf.APIURL = srv.URL

		p, err := NewPredictor(conf, zap.NewNop())
		require.NoError(t, err)
		defer p.Close()

		var out bytes.Buffer
		require.NoError(t, p.RunOnce(context.Background(), &out))
		assert.Contains(t, out.String(), "$3,386.70")
		assert.Contains(t, out.String(), "Based on historical data analysis")
	})
}
