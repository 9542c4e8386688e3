// Package cart keeps the ordered list of lines being rung up.
package cart

import "pos/internal/checkout/models"

// Cart is an ordered sequence of lines. It is a value: Add and Clear return
// a new Cart and never mutate or alias the receiver.
type Cart struct {
	lines []models.CartLine
}

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Add appends a quantity-1 line for p. Lines with the same product code are
// kept separate.
func (c Cart) Add(p models.Product) Cart {
	lines := make([]models.CartLine, len(c.lines), len(c.lines)+1)
	copy(lines, c.lines)
	lines = append(lines, models.CartLine{Product: p, Quantity: 1})
	return Cart{lines: lines}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Lines returns a copy of the lines in insertion order.
func (c Cart) Lines() []models.CartLine {
	return append([]models.CartLine(nil), c.lines...)
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
