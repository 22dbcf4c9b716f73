package internal

import (
	"context"
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	"go.uber.org/zap"

	"github.com/vadiminshakov/predictor/config"
	"github.com/vadiminshakov/predictor/internal/clients"
	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/services/catalog"
	"github.com/vadiminshakov/predictor/internal/services/prediction"
)

type predictionSource interface {
	Predict(ctx context.Context, symbol domain.Symbol) (domain.PredictionResult, error)
}

type symbolCatalog interface {
	Symbols(ctx context.Context) ([]domain.Symbol, error)
}

// newSources creates the live and demo prediction sources.
func newSources(conf config.Config) (live, demo predictionSource) {
	client := clients.NewPredictionClient(conf.APIURL, conf.RequestTimeout)
	live = prediction.NewLiveSource(client)
	demo = prediction.NewDemoSource(prediction.DemoDataset(), conf.DemoDelay, prediction.TimerDelayer{})
	return live, demo
}

// newCatalog is the single point of truth for dispatching to a catalog implementation.
func newCatalog(source string, symbols []domain.Symbol, logger *zap.Logger) (symbolCatalog, error) {
	switch source {
	case "", config.CatalogStatic:
		return catalog.NewStatic(symbols), nil
	case config.CatalogBinance:
		// exchange info is public, no keys needed
		return catalog.NewBinance(logger, binance.NewClient("", ""), symbols), nil
	default:
		return nil, fmt.Errorf("unsupported catalog source: %q", source)
	}
}
