// Package models holds the value types shared by the checkout components.
package models

// Product is a catalog entry as returned by a lookup. Prices are integer yen.
type Product struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CartLine is one added product occurrence. Lines are never merged, so two
// scans of the same code produce two lines of quantity 1.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Totals is a tax-exclusive / tax-inclusive pair in integer yen. The same
// shape serves provisional (client) and authoritative (server) totals.
type Totals struct {
	ExclTax int64 `json:"excl_tax"`
	InclTax int64 `json:"incl_tax"`
}

// Receipt is the sales service's answer to a successful purchase.
type Receipt struct {
	TransactionID string
	Totals        Totals
}

// Terminal identifies who, where and on which register a purchase happens.
type Terminal struct {
	EmployeeCode string
	StoreCode    string
	PosNo        string
}

// DefaultTerminal is the fixed identifier triple used when none is configured.
var DefaultTerminal = Terminal{
	EmployeeCode: "E001",
	StoreCode:    "S01",
	PosNo:        "P01",
}
