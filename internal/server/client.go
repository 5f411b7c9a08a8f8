package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/httpclient"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

// Client calls a running evaluation API.
type Client struct {
	http   *httpclient.InstrumentedClient
	logger logger.LoggerInterface
}

// NewClient creates a client for the API at baseURL. Requests go through a
// circuit breaker that logs its state changes.
func NewClient(baseURL string, timeout time.Duration, log logger.LoggerInterface) (*Client, error) {
	breaker := httpclient.DefaultBreakerSettings("optarb-api")
	breaker.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("optarb-api"),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
		httpclient.WithBreaker(breaker),
	)
	if err != nil {
		return nil, fmt.Errorf("server: client: %w", err)
	}
	return &Client{http: hc, logger: log}, nil
}

// Evaluate posts req to /api/v1/evaluate. API errors come back as
// *apperror.AppError with the server's code and status.
func (c *Client) Evaluate(ctx context.Context, req pricingDomain.Request) (*EvaluationResponse, error) {
	var out EvaluationResponse
	_, err := c.http.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(decodeAPIError),
		httpclient.WithLabels(httpclient.NewLabel("route", "evaluate")),
	).
		SetBody(req).
		SetResult(&out).
		Post(ctx, "/api/v1/evaluate")
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "remote evaluation", "id", out.ID, "flags", out.Flags)
	return &out, nil
}

// Flags lists the flags the API knows.
func (c *Client) Flags(ctx context.Context) ([]FlagResponse, error) {
	var out []FlagResponse
	_, err := c.http.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(decodeAPIError),
		httpclient.WithLabels(httpclient.NewLabel("route", "flags")),
	).
		SetResult(&out).
		Get(ctx, "/api/v1/flags")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAPIError turns an error body into an AppError. Bodies that are not
// API errors keep the status and the raw text.
func decodeAPIError(status int, body []byte) error {
	if status < 400 {
		return nil
	}

	var resp apperror.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error.Code == "" {
		return apperror.New(apperror.CodeInternalError,
			apperror.WithStatusCode(status),
			apperror.WithContext(string(body)))
	}
	return apperror.New(resp.Error.Code,
		apperror.WithMessage(resp.Error.Message),
		apperror.WithContext(resp.Error.Context),
		apperror.WithStatusCode(status))
}
