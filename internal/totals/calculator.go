// Package totals derives the provisional totals shown while a cart is open.
// These figures are advisory: they are never sent to the sales service and
// never used to check its answer.
package totals

import (
	"fmt"
	"math/big"

	"pos/internal/cart"
	"pos/internal/checkout/models"
)

// TaxRate is an exact decimal rate such as 0.10.
type TaxRate struct {
	rat *big.Rat
}

// DefaultTaxRate is the consumption tax applied when none is configured.
var DefaultTaxRate = MustTaxRate("0.10")

// ParseTaxRate parses a non-negative decimal string ("0.10", "0.08").
func ParseTaxRate(decimal string) (TaxRate, error) {
	r, ok := new(big.Rat).SetString(decimal)
	if !ok {
		return TaxRate{}, fmt.Errorf("invalid tax rate %q", decimal)
	}
	if r.Sign() < 0 {
		return TaxRate{}, fmt.Errorf("tax rate must not be negative: %q", decimal)
	}
	return TaxRate{rat: r}, nil
}

// MustTaxRate is ParseTaxRate for package-level constants.
func MustTaxRate(decimal string) TaxRate {
	r, err := ParseTaxRate(decimal)
	if err != nil {
		panic(err)
	}
	return r
}

func (r TaxRate) factor() *big.Rat {
	one := big.NewRat(1, 1)
	if r.rat == nil {
		return one
	}
	return one.Add(one, r.rat)
}

func (r TaxRate) String() string {
	if r.rat == nil {
		return "0"
	}
	return r.rat.FloatString(2)
}

// Calculator binds a tax rate so callers don't carry it around.
type Calculator struct {
	rate TaxRate
}

func NewCalculator(rate TaxRate) Calculator {
	return Calculator{rate: rate}
}

func (c Calculator) Rate() TaxRate {
	return c.rate
}

// Compute returns the provisional totals for c.
func (c Calculator) Compute(items cart.Cart) models.Totals {
	return Compute(items, c.rate)
}

// Compute sums price × quantity over all lines and applies rate, rounding
// the tax-inclusive figure to the nearest yen with halves away from zero.
func Compute(items cart.Cart, rate TaxRate) models.Totals {
	var excl int64
	for _, line := range items.Lines() {
		excl += line.Subtotal()
	}
	incl := new(big.Rat).Mul(new(big.Rat).SetInt64(excl), rate.factor())
	return models.Totals{ExclTax: excl, InclTax: roundHalfAwayFromZero(incl)}
}

func roundHalfAwayFromZero(r *big.Rat) int64 {
	num := new(big.Int).Abs(r.Num())
	den := r.Denom()

	// floor((2|n| + d) / 2d)
	twice := new(big.Int).Lsh(num, 1)
	twice.Add(twice, den)
	q := twice.Quo(twice, new(big.Int).Lsh(den, 1))
	if r.Sign() < 0 {
		q.Neg(q)
	}
	return q.Int64()
}
