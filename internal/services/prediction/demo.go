package prediction

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/predictor/internal/domain"
)

const defaultDemoDelay = 500 * time.Millisecond

// Delayer waits for d or until ctx is done.
type Delayer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerDelayer waits on a real timer.
type TimerDelayer struct{}

// Wait implements Delayer.
func (TimerDelayer) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DemoSource serves canned predictions with simulated latency so the loading state
// looks the same as in live mode.
type DemoSource struct {
	dataset map[domain.Symbol]domain.PredictionResult
	delay   time.Duration
	delayer Delayer
}

// NewDemoSource creates a demo source over dataset. A nil delayer uses a real timer,
// a non-positive delay falls back to 500ms.
func NewDemoSource(dataset map[domain.Symbol]domain.PredictionResult, delay time.Duration, delayer Delayer) *DemoSource {
	if delay <= 0 {
		delay = defaultDemoDelay
	}
	if delayer == nil {
		delayer = TimerDelayer{}
	}

	return &DemoSource{dataset: dataset, delay: delay, delayer: delayer}
}

// Predict looks up symbol after the simulated delay. A miss returns domain.ErrNoData.
func (s *DemoSource) Predict(ctx context.Context, symbol domain.Symbol) (domain.PredictionResult, error) {
	if err := s.delayer.Wait(ctx, s.delay); err != nil {
		return domain.PredictionResult{}, errors.Wrap(domain.ErrSuperseded, err.Error())
	}

	result, ok := s.dataset[symbol]
	if !ok {
		return domain.PredictionResult{}, errors.Wrapf(domain.ErrNoData, "no sample data for %s", symbol)
	}

	return result, nil
}

// Symbols returns the symbols covered by the dataset.
func (s *DemoSource) Symbols() []domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(s.dataset))
	for sym := range s.dataset {
		symbols = append(symbols, sym)
	}
	return symbols
}

// DemoDataset returns the fixed demonstration predictions.
func DemoDataset() map[domain.Symbol]domain.PredictionResult {
	date := domain.NewCalendarDate(2026, time.May, 18)
	entry := func(symbol domain.Symbol, price string) domain.PredictionResult {
		return domain.PredictionResult{
			Symbol: symbol,
			FinalPrediction: domain.FinalPrediction{
				Date:               date,
				PredictedPriceUSDT: decimal.RequireFromString(price),
			},
		}
	}

	return map[domain.Symbol]domain.PredictionResult{
		"BTCUSDT": entry("BTCUSDT", "78245.32"),
		"ETHUSDT": entry("ETHUSDT", "3386.7"),
		"DOGEBTC": entry("DOGEBTC", "0.00000245"),
		"BNBUSDT": entry("BNBUSDT", "542.18"),
	}
}
