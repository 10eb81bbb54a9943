package domain

import "github.com/shopspring/decimal"

// Side is the direction of a market order.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "unknown"
	}
}

// OrderResult is what the venue reports back for a submitted market order.
type OrderResult struct {
	Symbol       string
	OrigQuantity decimal.Decimal
	Fills        []Fill
}
