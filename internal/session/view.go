package session

import (
	"pos/internal/checkout/models"
	"pos/internal/totals"
)

// View is the read model a host renders.
type View struct {
	InputCode string          `json:"input_code"`
	Lookup    string          `json:"lookup"`
	Product   *models.Product `json:"product,omitempty"`
	Error     string          `json:"error,omitempty"`

	Lines       []models.CartLine `json:"lines"`
	Provisional models.Totals     `json:"provisional"`

	Purchase      string         `json:"purchase"`
	Popup         *models.Totals `json:"popup,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Displayed     models.Totals  `json:"displayed"`

	CanAddToCart bool `json:"can_add_to_cart"`
	CanPurchase  bool `json:"can_purchase"`
}

// NewView renders s. Provisional totals are recomputed from the cart on
// every call.
func NewView(s State, calc totals.Calculator) View {
	v := View{
		InputCode:     s.InputCode,
		Lookup:        s.Lookup.Status().String(),
		Error:         s.Error,
		Lines:         s.Cart.Lines(),
		Provisional:   calc.Compute(s.Cart),
		Purchase:      s.Purchase.Phase().String(),
		TransactionID: s.Purchase.TransactionID(),
		Displayed:     s.Displayed,
		CanAddToCart:  s.CanAddToCart(),
		CanPurchase:   s.CanPurchase(),
	}
	if v.Lines == nil {
		v.Lines = []models.CartLine{}
	}
	if p, ok := s.Lookup.Product(); ok {
		v.Product = &p
	}
	if t, ok := s.Purchase.Popup(); ok {
		v.Popup = &t
	}
	return v
}
