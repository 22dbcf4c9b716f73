package lookups

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/predictor/internal/domain"
)

func TestWALStore_SaveAndRead(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	populated := domain.Populated(domain.PredictionResult{
		Symbol: "DOGEBTC",
		FinalPrediction: domain.FinalPrediction{
			Date:               domain.NewCalendarDate(2026, time.May, 18),
			PredictedPriceUSDT: decimal.RequireFromString("0.00000245"),
		},
	})

	require.NoError(t, store.Save(domain.NewLookupEvent(ts, "req-1", "DOGEBTC", domain.ModeDemo, populated, 500*time.Millisecond)))
	require.NoError(t, store.Save(domain.NewLookupEvent(ts, "req-2", "SOLUSDT", domain.ModeDemo, domain.Empty(), 500*time.Millisecond)))
	assert.Equal(t, uint64(2), store.CurrentIndex())

	records, err := store.EventsAfter(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0].Event
	assert.Equal(t, uint64(1), records[0].Index)
	assert.Equal(t, "req-1", first.RequestID)
	assert.Equal(t, "populated", first.Kind)
	require.NotNil(t, first.Result)
	assert.Equal(t, "0.00000245", first.Result.FinalPrediction.PredictedPriceUSDT.String())

	assert.Equal(t, "empty", records[1].Event.Kind)
	assert.Nil(t, records[1].Event.Result)

	records, err = store.EventsAfter(2)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWALStore_RejectsEventWithoutSymbol(t *testing.T) {
	store, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	assert.Error(t, store.Save(domain.LookupEvent{}))
}

func TestWALStore_NilStore(t *testing.T) {
	var store *WALStore
	assert.Error(t, store.Save(domain.LookupEvent{Symbol: "BTCUSDT"}))
	assert.Equal(t, uint64(0), store.CurrentIndex())
}
