package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

// Region is an open interval of expiry prices between two breakpoints.
// A nil bound is unbounded.
type Region struct {
	Lower *decimal.Decimal
	Upper *decimal.Decimal
}

// Regions splits the price axis at the given increasing breakpoints,
// yielding len(breakpoints)+1 regions.
func Regions(breakpoints []decimal.Decimal) []Region {
	out := make([]Region, 0, len(breakpoints)+1)
	var lower *decimal.Decimal
	for i := range breakpoints {
		upper := breakpoints[i]
		out = append(out, Region{Lower: lower, Upper: &upper})
		lower = &upper
	}
	return append(out, Region{Lower: lower})
}

// Label renders the column header, e.g. "S(T) < 90" or "90 < S(T) < 100".
func (r Region) Label() string {
	switch {
	case r.Lower == nil && r.Upper == nil:
		return Symbol
	case r.Lower == nil:
		return fmt.Sprintf("%s < %s", Symbol, formatNumber(*r.Upper))
	case r.Upper == nil:
		return fmt.Sprintf("%s > %s", Symbol, formatNumber(*r.Lower))
	default:
		return fmt.Sprintf("%s < %s < %s", formatNumber(*r.Lower), Symbol, formatNumber(*r.Upper))
	}
}

// InTheMoney reports whether an option of class and strike finishes in the
// money everywhere in the region. Strikes must be among the breakpoints.
func (r Region) InTheMoney(class pricingDomain.OptionClass, strike decimal.Decimal) bool {
	if class == pricingDomain.Call {
		return r.Lower != nil && r.Lower.GreaterThanOrEqual(strike)
	}
	return r.Upper != nil && r.Upper.LessThanOrEqual(strike)
}
