package domain

import "github.com/shopspring/decimal"

// PriceQuote holds one class's market prices at X1, X2 and X3.
type PriceQuote struct {
	Class OptionClass
	P1    decimal.Decimal
	P2    decimal.Decimal
	P3    decimal.Decimal
}

// NewPriceQuote builds a quote for class.
func NewPriceQuote(class OptionClass, p1, p2, p3 decimal.Decimal) PriceQuote {
	return PriceQuote{Class: class, P1: p1, P2: p2, P3: p3}
}

// Slice returns the prices in strike order.
func (q PriceQuote) Slice() []decimal.Decimal {
	return []decimal.Decimal{q.P1, q.P2, q.P3}
}

// At returns the price quoted at strike index i (1, 2 or 3).
func (q PriceQuote) At(i int) decimal.Decimal {
	switch i {
	case 1:
		return q.P1
	case 2:
		return q.P2
	default:
		return q.P3
	}
}
