// Package purchase owns the purchase transaction lifecycle: a cart is
// submitted, the sales service reconciles it, and the outcome is presented
// as a popup (success) or an error with the cart kept (failure).
package purchase

import (
	"pos/internal/cart"
	"pos/internal/checkout/models"
	dErrors "pos/pkg/domain-errors"
)

// Phase is the purchase state discriminator.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhasePopupShown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhasePopupShown:
		return "popup_shown"
	default:
		return "unknown"
	}
}

var (
	// ErrSubmissionInProgress rejects a second submit while one is in flight.
	ErrSubmissionInProgress = dErrors.New(dErrors.CodeConflict, "purchase already in progress")
	// ErrNotSubmitting rejects a settlement with no submission in flight.
	ErrNotSubmitting = dErrors.New(dErrors.CodeInvalidState, "no purchase in progress")
)

// State is the purchase state machine. The zero value is Idle. Totals are
// only reachable through Popup, so a popup without totals or a submitting
// state with stale totals cannot be built.
type State struct {
	phase         Phase
	totals        models.Totals
	transactionID string
}

// Idle returns the initial state.
func Idle() State {
	return State{}
}

func (s State) Phase() Phase {
	return s.phase
}

// Popup returns the totals on display when the popup is shown.
func (s State) Popup() (models.Totals, bool) {
	if s.phase != PhasePopupShown {
		return models.Totals{}, false
	}
	return s.totals, true
}

// TransactionID is the server's trd_id while the popup is shown.
func (s State) TransactionID() string {
	if s.phase != PhasePopupShown {
		return ""
	}
	return s.transactionID
}

// Begin starts a purchase of c. An empty cart goes straight to a zero-total
// popup without a submission; callers must check Phase before submitting.
func (s State) Begin(c cart.Cart) (State, error) {
	if s.phase == PhaseSubmitting {
		return s, ErrSubmissionInProgress
	}
	if c.IsEmpty() {
		return State{phase: PhasePopupShown}, nil
	}
	return State{phase: PhaseSubmitting}, nil
}

// Complete settles a successful submission: the popup shows the server's
// totals and the returned cart is empty.
func (s State) Complete(c cart.Cart, r models.Receipt) (State, cart.Cart, error) {
	if s.phase != PhaseSubmitting {
		return s, c, ErrNotSubmitting
	}
	next := State{phase: PhasePopupShown, totals: r.Totals, transactionID: r.TransactionID}
	return next, c.Clear(), nil
}

// Fail settles a failed submission back to Idle. The cart is not touched.
func (s State) Fail() (State, error) {
	if s.phase != PhaseSubmitting {
		return s, ErrNotSubmitting
	}
	return Idle(), nil
}

// Dismiss hides the popup.
func (s State) Dismiss() State {
	if s.phase != PhasePopupShown {
		return s
	}
	return Idle()
}
