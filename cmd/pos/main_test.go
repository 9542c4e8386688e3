package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/checkout/models"
	"pos/internal/session"
)

type fakeSession struct {
	view      session.View
	searched  []string
	purchases int
	addErr    error
}

func (f *fakeSession) View() session.View { return f.view }

func (f *fakeSession) EnterCode(code string) session.View {
	f.view.InputCode = code
	return f.view
}

func (f *fakeSession) Search(_ context.Context, code string) session.View {
	f.searched = append(f.searched, code)
	f.view.Product = &models.Product{Code: code, Name: "Tea", Price: 105}
	return f.view
}

func (f *fakeSession) AddToCart(context.Context) (session.View, error) {
	return f.view, f.addErr
}

func (f *fakeSession) Purchase(context.Context) (session.View, error) {
	f.purchases++
	f.view.Popup = &models.Totals{ExclTax: 105, InclTax: 116}
	return f.view, nil
}

func (f *fakeSession) DismissPopup() session.View {
	f.view.Popup = nil
	return f.view
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func TestModelTyping(t *testing.T) {
	fake := &fakeSession{}
	m := initialModel(fake)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A1x")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "A1", m.view.InputCode)
	assert.Contains(t, m.View(), "Code: A1_")
}

func TestModelSearchRunsAsync(t *testing.T) {
	fake := &fakeSession{}
	m := initialModel(fake)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A1")})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Empty(t, fake.searched, "search must not run on the UI loop")

	m, _ = update(t, m, cmd())
	assert.False(t, m.busy)
	assert.Equal(t, []string{"A1"}, fake.searched)
	assert.Contains(t, m.View(), "Found: A1")
}

func TestModelPurchaseAndDismiss(t *testing.T) {
	fake := &fakeSession{}
	m := initialModel(fake)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, fake.purchases)
	assert.Contains(t, m.View(), "Purchase complete")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Purchase complete")
}

func TestModelRejectedAdd(t *testing.T) {
	fake := &fakeSession{addErr: errors.New("no product to add")}
	m := initialModel(fake)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, "Rejected: no product to add", m.status)
}
