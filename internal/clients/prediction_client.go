package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/internal/domain"
)

const (
	defaultPredictionTimeout = 5 * time.Second
	predictPath              = "/predict"
	maxPayloadBytes          = 1 << 20
)

// PredictionClient calls the remote prediction service.
type PredictionClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewPredictionClient creates a client for the service at baseURL.
// A non-positive timeout falls back to 5s.
func NewPredictionClient(baseURL string, timeout time.Duration) *PredictionClient {
	if timeout <= 0 {
		timeout = defaultPredictionTimeout
	}

	return &PredictionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		// deadline is enforced per request through the context
		httpClient: &http.Client{},
	}
}

// Timeout returns the per-request deadline.
func (c *PredictionClient) Timeout() time.Duration {
	return c.timeout
}

// Predict issues GET <base>/predict?symbol=<symbol> and returns the raw body of a 2xx response.
//
// Errors are one of domain.ErrTimeout, domain.ErrUnreachable, domain.ErrSuperseded (ctx cancelled by
// the caller) or *domain.RequestFailedError.
func (c *PredictionClient) Predict(ctx context.Context, symbol domain.Symbol) ([]byte, error) {
	reqCtx, cancel := context.WithTimeoutCause(ctx, c.timeout, domain.ErrTimeout)
	defer cancel()

	endpoint := c.baseURL + predictPath + "?" + url.Values{"symbol": {symbol.String()}}.Encode()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.RequestFailedError{Err: errors.Wrap(err, "failed to create HTTP request")}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return nil, &domain.RequestFailedError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, classifyTransportError(ctx, reqCtx, errors.Wrap(err, "failed to read response body"))
	}

	return body, nil
}

// classifyTransportError maps a failed call onto the error taxonomy.
// parent is the caller context, reqCtx the one carrying the deadline.
func classifyTransportError(parent, reqCtx context.Context, err error) error {
	if parent.Err() != nil {
		return errors.Wrap(domain.ErrSuperseded, err.Error())
	}
	if errors.Is(context.Cause(reqCtx), domain.ErrTimeout) {
		return domain.ErrTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errors.Wrap(domain.ErrUnreachable, err.Error())
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return errors.Wrap(domain.ErrUnreachable, err.Error())
	}

	return &domain.RequestFailedError{Err: err}
}
