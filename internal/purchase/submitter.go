package purchase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pos/internal/cart"
	"pos/internal/checkout/models"
	"pos/internal/platform/logger"
	"pos/internal/platform/metrics"
	"pos/internal/sales"
	dErrors "pos/pkg/domain-errors"
	"pos/pkg/platform/sentinel"
	"pos/pkg/requestcontext"
)

// SalesClient is the sales collaborator.
type SalesClient interface {
	Purchase(ctx context.Context, req sales.PurchaseRequest) (sales.PurchaseResponse, error)
}

// Submitter serializes a cart into a purchase request and maps the sales
// service's answer to authoritative totals.
type Submitter struct {
	sales    SalesClient
	terminal models.Terminal
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Submitter)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Submitter) {
		s.metrics = m
	}
}

// WithTerminal overrides models.DefaultTerminal.
func WithTerminal(t models.Terminal) Option {
	return func(s *Submitter) {
		s.terminal = t
	}
}

func NewSubmitter(client SalesClient, opts ...Option) (*Submitter, error) {
	if client == nil {
		return nil, errors.New("sales client is required")
	}
	s := &Submitter{
		sales:    client,
		terminal: models.DefaultTerminal,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BuildRequest lists every line's code and quantity in cart order. Names
// and prices stay on the terminal.
func BuildRequest(t models.Terminal, c cart.Cart) sales.PurchaseRequest {
	lines := c.Lines()
	items := make([]sales.PurchaseItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, sales.PurchaseItem{Code: line.Product.Code, Quantity: line.Quantity})
	}
	return sales.PurchaseRequest{
		EmployeeCode: t.EmployeeCode,
		StoreCode:    t.StoreCode,
		PosNo:        t.PosNo,
		Items:        items,
	}
}

// Submit sends c to the sales service once. An empty cart yields a zero
// receipt without a network call. Every failure carries CodePurchaseFailed.
func (s *Submitter) Submit(ctx context.Context, c cart.Cart) (models.Receipt, error) {
	requestID := requestcontext.RequestID(ctx)
	if c.IsEmpty() {
		if s.metrics != nil {
			s.metrics.IncrementPurchase(metrics.OutcomeEmptyCart)
		}
		s.logger.InfoContext(ctx, "empty cart purchase short-circuited", "request_id", requestID)
		return models.Receipt{}, nil
	}

	start := time.Now()
	resp, err := s.sales.Purchase(ctx, BuildRequest(s.terminal, c))
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodePurchaseFailed) {
			err = dErrors.Wrap(err, dErrors.CodePurchaseFailed, sales.MsgPurchaseFailed)
		}
		outcome := purchaseOutcome(err)
		if s.metrics != nil {
			s.metrics.ObservePurchase(outcome, start)
		}
		s.logger.WarnContext(ctx, "purchase failed",
			"request_id", requestID,
			"lines", c.Len(),
			"outcome", outcome,
			"error", err,
		)
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		TransactionID: string(resp.TransactionID),
		Totals: models.Totals{
			ExclTax: resp.TotalExTax,
			InclTax: resp.TotalAmount,
		},
	}
	if s.metrics != nil {
		s.metrics.ObservePurchase(metrics.OutcomeSuccess, start)
	}
	s.logger.InfoContext(ctx, "purchase completed",
		"request_id", requestID,
		"trd_id", receipt.TransactionID,
		"lines", c.Len(),
		"excl_tax", receipt.Totals.ExclTax,
		"incl_tax", receipt.Totals.InclTax,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return receipt, nil
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, sentinel.ErrRejected):
		return metrics.OutcomeRejected
	case errors.Is(err, sentinel.ErrBadData):
		return metrics.OutcomeBadData
	default:
		return metrics.OutcomeUnavailable
	}
}
