package domain

import "github.com/shopspring/decimal"

// The remote contract carries prices and totals as JSON numbers, so decimals
// must not serialize as quoted strings anywhere in the module.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
