package catalog

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/pkg/retrier"
	"go.uber.org/zap"
)

const tradingStatus = "TRADING"

type exchangeInfoFetcher func(ctx context.Context) (*binance.ExchangeInfo, error)

// Binance narrows a base list to the symbols the exchange currently trades.
// When the exchange cannot be queried the base list is returned unchanged.
type Binance struct {
	l       *zap.Logger
	base    []domain.Symbol
	fetch   exchangeInfoFetcher
	retrier *retrier.Retrier
}

// NewBinance creates a catalog filtered through client's exchange info.
func NewBinance(l *zap.Logger, client *binance.Client, base []domain.Symbol) *Binance {
	fetch := func(ctx context.Context) (*binance.ExchangeInfo, error) {
		return client.NewExchangeInfoService().Do(ctx)
	}
	return newBinance(l, base, fetch, retrier.New(
		retrier.WithRetryIf(isTransient),
		retrier.WithOnRetry(func(attempt int, wait time.Duration, err error) {
			l.Debug("retrying binance exchange info",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err))
		}),
	))
}

func newBinance(l *zap.Logger, base []domain.Symbol, fetch exchangeInfoFetcher, r *retrier.Retrier) *Binance {
	if len(base) == 0 {
		base = domain.PopularSymbols
	}
	return &Binance{l: l, base: base, fetch: fetch, retrier: r}
}

// Symbols returns the base symbols whose exchange status is TRADING, preserving order.
func (b *Binance) Symbols(ctx context.Context) ([]domain.Symbol, error) {
	symbols, err := b.trading(ctx)
	if err != nil {
		b.l.Warn("using static symbol catalog", zap.Error(err))
		return append([]domain.Symbol(nil), b.base...), nil
	}
	if len(symbols) == 0 {
		b.l.Warn("no listed symbols are trading, using static symbol catalog")
		return append([]domain.Symbol(nil), b.base...), nil
	}

	return symbols, nil
}

func (b *Binance) trading(ctx context.Context) ([]domain.Symbol, error) {
	info, err := retrier.DoWithData[*binance.ExchangeInfo](b.retrier, ctx, b.fetch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch binance exchange info")
	}
	if info == nil {
		return nil, errors.New("empty binance exchange info")
	}

	status := make(map[string]string, len(info.Symbols))
	for _, s := range info.Symbols {
		status[s.Symbol] = s.Status
	}

	var symbols []domain.Symbol
	for _, s := range b.base {
		if status[s.String()] == tradingStatus {
			symbols = append(symbols, s)
		}
	}

	return symbols, nil
}

func isTransient(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
