package prediction

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/internal/domain"
)

// user facing messages of the error banner
const (
	MessageTimeout       = "Request timed out. The API server is taking too long to respond."
	MessageUnreachable   = "Cannot connect to the prediction API. The server might be offline or unreachable."
	MessageRequestFailed = "Failed to fetch prediction data. Please try again later."
)

// Project maps the outcome of a lookup onto the state to display.
// "No data" outcomes become Empty, transport failures become Error.
func Project(result domain.PredictionResult, err error) domain.DisplayState {
	if err == nil {
		return domain.Populated(result)
	}

	switch {
	case errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrInvalid):
		return domain.Empty()
	case errors.Is(err, domain.ErrTimeout):
		return domain.Failed(domain.FailureTimeout, MessageTimeout, 0)
	case errors.Is(err, domain.ErrUnreachable):
		return domain.Failed(domain.FailureUnreachable, MessageUnreachable, 0)
	}

	status := 0
	var failed *domain.RequestFailedError
	if errors.As(err, &failed) {
		status = failed.Status
	}
	return domain.Failed(domain.FailureRequestFailed, MessageRequestFailed, status)
}
