package prediction

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/predictor/internal/domain"
)

// payload mirrors the service response with every field optional so absence can be detected.
type payload struct {
	Symbol          *string `json:"symbol"`
	FinalPrediction *struct {
		Date               *string          `json:"date"`
		PredictedPriceUSDT *decimal.Decimal `json:"predicted_price_usdt"`
	} `json:"final_prediction"`
}

// Validate checks the shape of a service response and wraps it into a PredictionResult.
// Any missing, empty or unparseable required field yields domain.ErrInvalid.
// The price value itself is not range checked.
func Validate(raw []byte) (domain.PredictionResult, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, err.Error())
	}

	if p.Symbol == nil || strings.TrimSpace(*p.Symbol) == "" {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, "symbol is missing")
	}
	if p.FinalPrediction == nil {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, "final_prediction is missing")
	}
	if p.FinalPrediction.Date == nil || *p.FinalPrediction.Date == "" {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, "final_prediction.date is missing")
	}
	if p.FinalPrediction.PredictedPriceUSDT == nil {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, "final_prediction.predicted_price_usdt is missing")
	}

	date, err := domain.ParseCalendarDate(*p.FinalPrediction.Date)
	if err != nil {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrInvalid, err.Error())
	}

	return domain.PredictionResult{
		Symbol: domain.Symbol(*p.Symbol),
		FinalPrediction: domain.FinalPrediction{
			Date:               date,
			PredictedPriceUSDT: *p.FinalPrediction.PredictedPriceUSDT,
		},
	}, nil
}
