package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"pos/internal/cart"
	"pos/internal/checkout/models"
	"pos/internal/platform/logger"
	"pos/internal/platform/metrics"
	"pos/internal/totals"
	dErrors "pos/pkg/domain-errors"
	"pos/pkg/requestcontext"
)

// Catalog looks products up by code.
type Catalog interface {
	Lookup(ctx context.Context, code string) (models.Product, error)
}

// Submitter sends a cart to the sales service and returns its reconciliation.
type Submitter interface {
	Submit(ctx context.Context, c cart.Cart) (models.Receipt, error)
}

// Fallback messages for collaborator errors that carry none.
const (
	msgLookupFailed   = "product lookup failed"
	msgPurchaseFailed = "purchase failed"
)

var (
	ErrNothingToAdd = dErrors.New(dErrors.CodeInvalidState, "no product to add")
	ErrCartFrozen   = dErrors.New(dErrors.CodeConflict, "cart is frozen while a purchase is in progress")
)

// Controller is the only owner of a session's State. Actions are serialized
// under mu; collaborator calls run outside it.
type Controller struct {
	mu        sync.Mutex
	state     State
	searchSeq uint64

	catalog    Catalog
	submitter  Submitter
	calculator totals.Calculator
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithCalculator overrides the provisional totals calculator (default 10%).
func WithCalculator(calc totals.Calculator) Option {
	return func(c *Controller) {
		c.calculator = calc
	}
}

// New constructs a Controller with an empty session.
func New(catalog Catalog, submitter Submitter, opts ...Option) (*Controller, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}
	c := &Controller{
		state:      Initial(),
		catalog:    catalog,
		submitter:  submitter,
		calculator: totals.NewCalculator(totals.DefaultTaxRate),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// View returns the current read model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// EnterCode updates the code input.
func (c *Controller) EnterCode(code string) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(CodeEntered{Code: code})
	return c.view()
}

// Search looks code up. A failure is recorded in the view's Error; a result
// that arrives after a newer search started is dropped.
func (c *Controller) Search(ctx context.Context, code string) View {
	c.mu.Lock()
	c.apply(CodeEntered{Code: code})
	c.apply(SearchStarted{})
	c.searchSeq++
	seq := c.searchSeq
	c.mu.Unlock()

	product, err := c.catalog.Lookup(ctx, code)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		c.logger.DebugContext(ctx, "stale lookup result dropped",
			"request_id", requestcontext.RequestID(ctx),
			"code", code,
		)
		return c.view()
	}
	if err != nil {
		c.apply(LookupFailed{Message: dErrors.Message(err, msgLookupFailed)})
		return c.view()
	}
	c.apply(LookupSucceeded{Product: product})
	return c.view()
}

// AddToCart appends the looked-up product. It is rejected without a found
// product or while a purchase is in flight.
func (c *Controller) AddToCart(ctx context.Context) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Submitting() {
		c.reject(ctx, "add_to_cart", ErrCartFrozen)
		return c.view(), ErrCartFrozen
	}
	p, ok := c.state.Lookup.Product()
	if !ok {
		c.reject(ctx, "add_to_cart", ErrNothingToAdd)
		return c.view(), ErrNothingToAdd
	}

	c.apply(AddedToCart{})
	c.logger.InfoContext(ctx, "line added",
		"request_id", requestcontext.RequestID(ctx),
		"code", p.Code,
		"lines", c.state.Cart.Len(),
	)
	c.observeCart()
	return c.view(), nil
}

// Purchase submits the cart. An empty cart shows a zero popup with no
// network call. A failure keeps the cart and is recorded in Error; the only
// returned error is a rejection because a purchase is already in flight.
func (c *Controller) Purchase(ctx context.Context) (View, error) {
	c.mu.Lock()
	if _, err := c.state.Purchase.Begin(c.state.Cart); err != nil {
		c.reject(ctx, "purchase", err)
		v := c.view()
		c.mu.Unlock()
		return v, err
	}
	c.apply(PurchaseRequested{})
	if !c.state.Submitting() {
		if c.metrics != nil {
			c.metrics.IncrementPurchase(metrics.OutcomeEmptyCart)
		}
		v := c.view()
		c.mu.Unlock()
		return v, nil
	}
	snapshot := c.state.Cart
	c.mu.Unlock()

	receipt, err := c.submitter.Submit(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.apply(PurchaseFailed{Message: dErrors.Message(err, msgPurchaseFailed)})
		return c.view(), nil
	}
	c.apply(PurchaseSucceeded{Receipt: receipt})
	c.observeCart()
	return c.view(), nil
}

// DismissPopup acknowledges the purchase popup.
func (c *Controller) DismissPopup() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(PopupDismissed{})
	return c.view()
}

func (c *Controller) apply(a Action) {
	c.state = Reduce(c.state, a)
}

func (c *Controller) view() View {
	return NewView(c.state, c.calculator)
}

func (c *Controller) reject(ctx context.Context, action string, err error) {
	if c.metrics != nil {
		c.metrics.IncrementRejected(action)
	}
	c.logger.InfoContext(ctx, "action rejected",
		"request_id", requestcontext.RequestID(ctx),
		"action", action,
		"reason", err,
	)
}

func (c *Controller) observeCart() {
	if c.metrics != nil {
		c.metrics.SetCartLines(c.state.Cart.Len())
	}
}
