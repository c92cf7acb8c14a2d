package domain

import "github.com/shopspring/decimal"

// CartLine is one product+model+quantity entry in the remote cart. The
// remote API owns it; local code only ever holds a read-through copy.
type CartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	ModelID   int64           `json:"model_id"`
	Name      string          `json:"name"`
	Model     string          `json:"model,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// Subtotal is price × qty, unrounded.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}
