// Package domain contains the shared option-pricing types: strikes, quotes and the evaluation request.
package domain

import "github.com/shopspring/decimal"

// OptionClass is call or put.
type OptionClass string

const (
	Call OptionClass = "call"
	Put  OptionClass = "put"
)

// String returns the class name as used in transaction descriptions.
func (c OptionClass) String() string {
	return string(c)
}

// Intrinsic returns the expiry value of one option with the given strike at underlying price s:
// max(s-strike, 0) for calls, max(strike-s, 0) for puts.
func (c OptionClass) Intrinsic(strike, s decimal.Decimal) decimal.Decimal {
	var v decimal.Decimal
	if c == Call {
		v = s.Sub(strike)
	} else {
		v = strike.Sub(s)
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
