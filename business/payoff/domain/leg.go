package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

// Side is long or short.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// sign is +1 for long, -1 for short.
func (s Side) sign() decimal.Decimal {
	if s == Short {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Leg is Quantity options of one class and strike, bought or sold at Premium each.
type Leg struct {
	Class    pricingDomain.OptionClass
	Side     Side
	Quantity int64
	Strike   decimal.Decimal
	Premium  decimal.Decimal
}

func (l Leg) qty() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity)
}

// Cost is the signed cash flow at time now: premium received for shorts,
// premium paid (negative) for longs.
func (l Leg) Cost() decimal.Decimal {
	return l.Premium.Mul(l.qty()).Mul(l.Side.sign()).Neg()
}

// Payoff is the leg's signed intrinsic value at expiry price s, excluding the premium.
func (l Leg) Payoff(s decimal.Decimal) decimal.Decimal {
	return l.Class.Intrinsic(l.Strike, s).Mul(l.qty()).Mul(l.Side.sign())
}

// PayoffIn returns the leg's payoff over region r as a linear expression.
// Region bounds are strikes, so moneyness is constant across the region.
func (l Leg) PayoffIn(r Region) Linear {
	if !r.InTheMoney(l.Class, l.Strike) {
		return Constant(decimal.Zero)
	}

	// call: S - K, put: K - S
	expr := Linear{Slope: decimal.NewFromInt(1), Intercept: l.Strike.Neg()}
	if l.Class == pricingDomain.Put {
		expr = expr.Scale(decimal.NewFromInt(-1))
	}
	return expr.Scale(l.qty().Mul(l.Side.sign()))
}

// Description renders the leg as a transaction, e.g. "Short 2x 100-strike call".
func (l Leg) Description() string {
	side := "Long"
	if l.Side == Short {
		side = "Short"
	}
	if l.Quantity == 1 {
		return fmt.Sprintf("%s %s-strike %s", side, formatNumber(l.Strike), l.Class)
	}
	return fmt.Sprintf("%s %dx %s-strike %s", side, l.Quantity, formatNumber(l.Strike), l.Class)
}
