// Package session is the checkout session: the single state root, the pure
// reducer that moves it, and the controller that performs I/O between
// transitions.
package session

import (
	"pos/internal/cart"
	"pos/internal/checkout/models"
	"pos/internal/purchase"
)

// LookupStatus discriminates LookupResult.
type LookupStatus int

const (
	LookupNone LookupStatus = iota
	LookupFound
	LookupNotFound
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// LookupResult is None, Found(product) or NotFound(message).
type LookupResult struct {
	status  LookupStatus
	product models.Product
	message string
}

func NoLookup() LookupResult {
	return LookupResult{}
}

func Found(p models.Product) LookupResult {
	return LookupResult{status: LookupFound, product: p}
}

func NotFound(message string) LookupResult {
	return LookupResult{status: LookupNotFound, message: message}
}

func (r LookupResult) Status() LookupStatus {
	return r.status
}

// Product returns the looked-up product when the lookup succeeded.
func (r LookupResult) Product() (models.Product, bool) {
	if r.status != LookupFound {
		return models.Product{}, false
	}
	return r.product, true
}

// Message returns the failure message of a NotFound result.
func (r LookupResult) Message() string {
	if r.status != LookupNotFound {
		return ""
	}
	return r.message
}

// State is the whole mutable session.
type State struct {
	InputCode string
	Lookup    LookupResult
	// Error is the operator-facing message of the last failed lookup or
	// purchase. Only a new search clears it.
	Error    string
	Cart     cart.Cart
	Purchase purchase.State
	// Displayed holds the last totals shown in a popup. Dismissing keeps them.
	Displayed models.Totals
}

// Initial returns an empty session.
func Initial() State {
	return State{Cart: cart.New(), Purchase: purchase.Idle()}
}

// Submitting reports whether a purchase is in flight; the cart is frozen.
func (s State) Submitting() bool {
	return s.Purchase.Phase() == purchase.PhaseSubmitting
}

// CanAddToCart is the "add to cart" button guard.
func (s State) CanAddToCart() bool {
	_, ok := s.Lookup.Product()
	return ok && !s.Submitting()
}

// CanPurchase is the "purchase" button guard.
func (s State) CanPurchase() bool {
	return !s.Cart.IsEmpty() && !s.Submitting()
}
