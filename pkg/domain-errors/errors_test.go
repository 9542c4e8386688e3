package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("lookup: %w", Wrap(cause, CodeLookupFailed, "product lookup failed"))

	assert.True(t, HasCode(err, CodeLookupFailed))
	assert.False(t, HasCode(err, CodePurchaseFailed))
	assert.ErrorIs(t, err, cause)
	assert.False(t, HasCode(cause, CodeLookupFailed))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeConflict, GetCode(New(CodeConflict, "busy")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	t.Run("coded error returns its message", func(t *testing.T) {
		err := Wrap(errors.New("status 404"), CodeLookupFailed, "product not found")
		assert.Equal(t, "product not found", Message(err, "fallback"))
	})

	t.Run("plain error returns fallback", func(t *testing.T) {
		assert.Equal(t, "fallback", Message(errors.New("dial tcp: refused"), "fallback"))
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "invalid_state: nothing to add", New(CodeInvalidState, "nothing to add").Error())
	assert.Equal(t, "lookup_failed: product not found: boom",
		Wrap(errors.New("boom"), CodeLookupFailed, "product not found").Error())
}
