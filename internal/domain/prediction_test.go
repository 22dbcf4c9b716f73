package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2026-05-18")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-18", d.String())
	assert.Equal(t, "May 18, 2026", d.Long())

	_, err = ParseCalendarDate("18/05/2026")
	assert.Error(t, err)
}

func TestPredictionResult_Decode(t *testing.T) {
	raw := `{"symbol":"BNBUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":542.18}}`

	var r PredictionResult
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, Symbol("BNBUSDT"), r.Symbol)
	assert.Equal(t, "542.18", r.FinalPrediction.PredictedPriceUSDT.String())
	assert.Equal(t, "2026-05-18", r.FinalPrediction.Date.String())
}
