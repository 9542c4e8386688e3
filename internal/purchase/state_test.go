package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/cart"
	"pos/internal/checkout/models"
	dErrors "pos/pkg/domain-errors"
)

var teaCart = cart.New().Add(models.Product{Code: "A1", Name: "Tea", Price: 105})

func TestBegin(t *testing.T) {
	t.Run("non-empty cart moves to submitting", func(t *testing.T) {
		next, err := Idle().Begin(teaCart)
		require.NoError(t, err)
		assert.Equal(t, PhaseSubmitting, next.Phase())
		_, shown := next.Popup()
		assert.False(t, shown)
	})

	t.Run("empty cart shows zero popup directly", func(t *testing.T) {
		next, err := Idle().Begin(cart.New())
		require.NoError(t, err)

		totals, shown := next.Popup()
		assert.True(t, shown)
		assert.Equal(t, models.Totals{}, totals)
	})

	t.Run("second begin while submitting is rejected", func(t *testing.T) {
		submitting, err := Idle().Begin(teaCart)
		require.NoError(t, err)

		next, err := submitting.Begin(teaCart)
		assert.ErrorIs(t, err, ErrSubmissionInProgress)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Equal(t, submitting, next)
	})

	t.Run("begin from popup starts a new purchase", func(t *testing.T) {
		popup, err := Idle().Begin(cart.New())
		require.NoError(t, err)

		next, err := popup.Begin(teaCart)
		require.NoError(t, err)
		assert.Equal(t, PhaseSubmitting, next.Phase())
	})
}

func TestComplete(t *testing.T) {
	submitting, err := Idle().Begin(teaCart)
	require.NoError(t, err)

	// Diverges from the provisional 116 on purpose: the server decides.
	receipt := models.Receipt{TransactionID: "T1", Totals: models.Totals{ExclTax: 100, InclTax: 108}}
	next, remaining, err := submitting.Complete(teaCart, receipt)
	require.NoError(t, err)

	totals, shown := next.Popup()
	assert.True(t, shown)
	assert.Equal(t, receipt.Totals, totals)
	assert.Equal(t, "T1", next.TransactionID())
	assert.True(t, remaining.IsEmpty())
	assert.Equal(t, 1, teaCart.Len())

	t.Run("complete without submission is rejected", func(t *testing.T) {
		_, c, err := Idle().Complete(teaCart, receipt)
		assert.ErrorIs(t, err, ErrNotSubmitting)
		assert.Equal(t, teaCart, c)
	})
}

func TestFail(t *testing.T) {
	submitting, err := Idle().Begin(teaCart)
	require.NoError(t, err)

	next, err := submitting.Fail()
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, next.Phase())

	_, err = Idle().Fail()
	assert.ErrorIs(t, err, ErrNotSubmitting)
}

func TestDismiss(t *testing.T) {
	popup, err := Idle().Begin(cart.New())
	require.NoError(t, err)

	assert.Equal(t, PhaseIdle, popup.Dismiss().Phase())
	assert.Empty(t, popup.Dismiss().TransactionID())

	submitting, err := Idle().Begin(teaCart)
	require.NoError(t, err)
	assert.Equal(t, PhaseSubmitting, submitting.Dismiss().Phase(), "dismiss does not abort a submission")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "popup_shown", PhasePopupShown.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
