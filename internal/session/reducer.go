package session

import "pos/internal/checkout/models"

// Action is an operator action or the result of a collaborator call.
type Action interface {
	isAction()
}

type (
	// CodeEntered updates the code input field.
	CodeEntered struct{ Code string }
	// SearchStarted clears the previous lookup and error.
	SearchStarted struct{}
	LookupSucceeded struct{ Product models.Product }
	LookupFailed    struct{ Message string }
	// AddedToCart appends the looked-up product as a new line.
	AddedToCart struct{}
	// PurchaseRequested asks the purchase machine to begin.
	PurchaseRequested struct{}
	PurchaseSucceeded struct{ Receipt models.Receipt }
	PurchaseFailed    struct{ Message string }
	PopupDismissed    struct{}
)

func (CodeEntered) isAction()       {}
func (SearchStarted) isAction()     {}
func (LookupSucceeded) isAction()   {}
func (LookupFailed) isAction()      {}
func (AddedToCart) isAction()       {}
func (PurchaseRequested) isAction() {}
func (PurchaseSucceeded) isAction() {}
func (PurchaseFailed) isAction()    {}
func (PopupDismissed) isAction()    {}

// Reduce applies a to s. It is pure; actions that are illegal in s return
// s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case CodeEntered:
		s.InputCode = a.Code

	case SearchStarted:
		s.Lookup = NoLookup()
		s.Error = ""

	case LookupSucceeded:
		s.Lookup = Found(a.Product)

	case LookupFailed:
		s.Lookup = NotFound(a.Message)
		s.Error = a.Message

	case AddedToCart:
		if !s.CanAddToCart() {
			return s
		}
		p, _ := s.Lookup.Product()
		s.Cart = s.Cart.Add(p)
		s.Lookup = NoLookup()
		s.InputCode = ""

	case PurchaseRequested:
		next, err := s.Purchase.Begin(s.Cart)
		if err != nil {
			return s
		}
		s.Purchase = next
		if totals, shown := next.Popup(); shown {
			s.Displayed = totals
		}

	case PurchaseSucceeded:
		next, remaining, err := s.Purchase.Complete(s.Cart, a.Receipt)
		if err != nil {
			return s
		}
		s.Purchase = next
		s.Cart = remaining
		s.Displayed = a.Receipt.Totals

	case PurchaseFailed:
		next, err := s.Purchase.Fail()
		if err != nil {
			return s
		}
		s.Purchase = next
		s.Error = a.Message

	case PopupDismissed:
		s.Purchase = s.Purchase.Dismiss()
	}
	return s
}
