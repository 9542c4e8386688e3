// Package catalog looks products up by code against the catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pos/internal/checkout/models"
	"pos/internal/platform/httpclient"
	"pos/internal/platform/logger"
	"pos/internal/platform/metrics"
	dErrors "pos/pkg/domain-errors"
	"pos/pkg/platform/sentinel"
	"pos/pkg/requestcontext"
)

// Operator-facing messages. Not-found and unreachable are deliberately
// reported through the same failure code.
const (
	MsgProductNotFound = "product not found"
	MsgLookupFailed    = "product lookup failed"
)

const searchPath = "products/search"

// Client queries GET {endpoint}/products/search?code={code}.
type Client struct {
	searchURL  *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) {
		cl.tracer = t
	}
}

// New constructs a catalog client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	joined, err := url.JoinPath(baseURL, searchPath)
	if err != nil {
		return nil, fmt.Errorf("catalog base URL: %w", err)
	}
	searchURL, err := url.Parse(joined)
	if err != nil {
		return nil, fmt.Errorf("catalog base URL: %w", err)
	}

	c := &Client{
		searchURL:  searchURL,
		httpClient: httpclient.New(10 * time.Second),
		logger:     logger.Discard(),
		tracer:     otel.Tracer("pos/catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup fetches the product for code. The code is sent as typed; the
// catalog is the only validator. Every failure carries CodeLookupFailed.
func (c *Client) Lookup(ctx context.Context, code string) (models.Product, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.Lookup", trace.WithAttributes(
		attribute.String("product.code", code),
	))
	defer span.End()
	start := time.Now()

	product, outcome, err := c.lookup(ctx, code)
	if c.metrics != nil {
		c.metrics.ObserveLookup(outcome, start)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.WarnContext(ctx, "product lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"code", code,
			"outcome", outcome,
			"error", err,
		)
		return models.Product{}, err
	}

	c.logger.InfoContext(ctx, "product looked up",
		"request_id", requestcontext.RequestID(ctx),
		"code", product.Code,
		"price", product.Price,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return product, nil
}

func (c *Client) lookup(ctx context.Context, code string) (models.Product, string, error) {
	u := *c.searchURL
	u.RawQuery = url.Values{"code": {code}}.Encode()

	resp, err := httpclient.DoJSON(ctx, c.httpClient, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Product{}, metrics.OutcomeUnavailable, dErrors.Wrap(
			fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err),
			dErrors.CodeLookupFailed, MsgLookupFailed)
	}

	product, err := parseProductResponse(resp.StatusCode, resp.Body)
	if err != nil {
		return models.Product{}, outcomeFor(err), err
	}
	return product, metrics.OutcomeSuccess, nil
}

// parseProductResponse maps a catalog answer to a Product or LookupFailed.
func parseProductResponse(status int, body []byte) (models.Product, error) {
	if status < 200 || status >= 300 {
		return models.Product{}, dErrors.Wrap(
			fmt.Errorf("%w: catalog returned status %d", sentinel.ErrNotFound, status),
			dErrors.CodeLookupFailed, MsgProductNotFound)
	}

	var product models.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return models.Product{}, dErrors.Wrap(
			fmt.Errorf("%w: decode product: %w", sentinel.ErrBadData, err),
			dErrors.CodeLookupFailed, MsgLookupFailed)
	}
	return product, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, sentinel.ErrBadData):
		return metrics.OutcomeBadData
	default:
		return metrics.OutcomeUnavailable
	}
}
