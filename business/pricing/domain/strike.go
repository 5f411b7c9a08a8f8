package domain

import "github.com/shopspring/decimal"

// StrikeSet holds three strikes, expected to satisfy X1 < X2 < X3.
type StrikeSet struct {
	X1 decimal.Decimal `json:"x1"`
	X2 decimal.Decimal `json:"x2"`
	X3 decimal.Decimal `json:"x3"`
}

// NewStrikeSet builds a StrikeSet without validating it.
func NewStrikeSet(x1, x2, x3 decimal.Decimal) StrikeSet {
	return StrikeSet{X1: x1, X2: x2, X3: x3}
}

// Increasing reports whether X1 < X2 < X3 holds strictly.
func (s StrikeSet) Increasing() bool {
	return s.X1.LessThan(s.X2) && s.X2.LessThan(s.X3)
}

// LowerWidth is X2 - X1.
func (s StrikeSet) LowerWidth() decimal.Decimal {
	return s.X2.Sub(s.X1)
}

// UpperWidth is X3 - X2.
func (s StrikeSet) UpperWidth() decimal.Decimal {
	return s.X3.Sub(s.X2)
}

// OuterWidth is X3 - X1.
func (s StrikeSet) OuterWidth() decimal.Decimal {
	return s.X3.Sub(s.X1)
}

// Slice returns the strikes in order.
func (s StrikeSet) Slice() []decimal.Decimal {
	return []decimal.Decimal{s.X1, s.X2, s.X3}
}
