package prediction

import (
	"context"

	"github.com/vadiminshakov/predictor/internal/domain"
)

type predictionClient interface {
	Predict(ctx context.Context, symbol domain.Symbol) ([]byte, error)
}

// LiveSource asks the remote prediction service and validates its answer.
type LiveSource struct {
	client predictionClient
}

// NewLiveSource creates a live source on top of the service client.
func NewLiveSource(client predictionClient) *LiveSource {
	return &LiveSource{client: client}
}

// Predict fetches and validates the prediction for symbol.
func (s *LiveSource) Predict(ctx context.Context, symbol domain.Symbol) (domain.PredictionResult, error) {
	body, err := s.client.Predict(ctx, symbol)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	return Validate(body)
}
