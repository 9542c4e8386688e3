// Package sales submits purchases to the sales service.
package sales

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

	"pos/internal/platform/httpclient"
	"pos/internal/platform/logger"
	dErrors "pos/pkg/domain-errors"
	"pos/pkg/platform/sentinel"
	"pos/pkg/requestcontext"
)

// MsgPurchaseFailed is shown to the operator for every purchase failure.
const MsgPurchaseFailed = "purchase failed"

const purchasePath = "purchase2"

// Client posts to {endpoint}/purchase2.
type Client struct {
	purchaseURL string
	httpClient  *http.Client
	logger      *slog.Logger
	tracer      trace.Tracer
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

func WithTracer(t trace.Tracer) Option {
	return func(cl *Client) {
		cl.tracer = t
	}
}

// New constructs a sales client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("sales base URL is required")
	}
	purchaseURL, err := url.JoinPath(baseURL, purchasePath)
	if err != nil {
		return nil, fmt.Errorf("sales base URL: %w", err)
	}

	c := &Client{
		purchaseURL: purchaseURL,
		httpClient:  httpclient.New(10 * time.Second),
		logger:      logger.Discard(),
		tracer:      otel.Tracer("pos/sales"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Purchase submits req once. Failures carry CodePurchaseFailed and wrap
// sentinel.ErrUnavailable, ErrRejected or ErrBadData.
func (c *Client) Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResponse, error) {
	ctx, span := c.tracer.Start(ctx, "sales.Purchase", trace.WithAttributes(
		attribute.Int("purchase.items", len(req.Items)),
		attribute.String("purchase.pos_no", req.PosNo),
	))
	defer span.End()

	resp, err := httpclient.DoJSON(ctx, c.httpClient, http.MethodPost, c.purchaseURL, req)
	if err != nil {
		err = dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err),
			dErrors.CodePurchaseFailed, MsgPurchaseFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unavailable")
		return PurchaseResponse{}, err
	}

	out, err := parsePurchaseResponse(resp.StatusCode, resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.DebugContext(ctx, "sales service refused purchase",
			"request_id", requestcontext.RequestID(ctx),
			"status", resp.StatusCode,
		)
		return PurchaseResponse{}, err
	}
	span.SetAttributes(attribute.String("purchase.trd_id", string(out.TransactionID)))
	return out, nil
}

func parsePurchaseResponse(status int, body []byte) (PurchaseResponse, error) {
	if status < 200 || status >= 300 {
		return PurchaseResponse{}, dErrors.Wrap(
			fmt.Errorf("%w: sales returned status %d", sentinel.ErrRejected, status),
			dErrors.CodePurchaseFailed, MsgPurchaseFailed)
	}

	var out PurchaseResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return PurchaseResponse{}, dErrors.Wrap(
			fmt.Errorf("%w: decode purchase response: %w", sentinel.ErrBadData, err),
			dErrors.CodePurchaseFailed, MsgPurchaseFailed)
	}
	return out, nil
}
