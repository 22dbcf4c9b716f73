package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/predictor/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		invalid bool
		price   string
	}{
		{
			name:    "complete payload",
			payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":3386.7}}`,
			price:   "3386.7",
		},
		{
			name:    "negative price passes through",
			payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":-12.5}}`,
			price:   "-12.5",
		},
		{
			name:    "zero price passes through",
			payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":0}}`,
			price:   "0",
		},
		{
			name:    "extra fields are ignored",
			payload: `{"symbol":"ETHUSDT","model":"xgb","final_prediction":{"date":"2026-05-18","predicted_price_usdt":1}}`,
			price:   "1",
		},
		{name: "missing symbol", payload: `{"final_prediction":{"date":"2026-05-18","predicted_price_usdt":1}}`, invalid: true},
		{name: "empty symbol", payload: `{"symbol":"","final_prediction":{"date":"2026-05-18","predicted_price_usdt":1}}`, invalid: true},
		{name: "missing final prediction", payload: `{"symbol":"ETHUSDT"}`, invalid: true},
		{name: "null final prediction", payload: `{"symbol":"ETHUSDT","final_prediction":null}`, invalid: true},
		{name: "missing date", payload: `{"symbol":"ETHUSDT","final_prediction":{"predicted_price_usdt":1}}`, invalid: true},
		{name: "missing price", payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18"}}`, invalid: true},
		{name: "null price", payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":null}}`, invalid: true},
		{name: "malformed date", payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"tomorrow","predicted_price_usdt":1}}`, invalid: true},
		{name: "price of wrong type", payload: `{"symbol":"ETHUSDT","final_prediction":{"date":"2026-05-18","predicted_price_usdt":true}}`, invalid: true},
		{name: "not json", payload: `<html>oops</html>`, invalid: true},
		{name: "json null", payload: `null`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.payload))
			if tt.invalid {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.Symbol("ETHUSDT"), result.Symbol)
			assert.Equal(t, "2026-05-18", result.FinalPrediction.Date.String())
			assert.Equal(t, tt.price, result.FinalPrediction.PredictedPriceUSDT.String())
		})
	}
}
