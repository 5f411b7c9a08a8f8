// Package domain contains the payoff types: legs, portfolios, payoff tables and curves.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Symbol is how the expiry price of the underlying is written in tables.
const Symbol = "S(T)"

// Linear is the expression Slope*S(T) + Intercept. Every payoff region of a
// portfolio built from vanilla options is linear in S(T).
type Linear struct {
	Slope     decimal.Decimal
	Intercept decimal.Decimal
}

// Constant returns the expression with zero slope.
func Constant(v decimal.Decimal) Linear {
	return Linear{Slope: decimal.Zero, Intercept: v}
}

// Add returns l + o.
func (l Linear) Add(o Linear) Linear {
	return Linear{Slope: l.Slope.Add(o.Slope), Intercept: l.Intercept.Add(o.Intercept)}
}

// Sub returns l - o.
func (l Linear) Sub(o Linear) Linear {
	return Linear{Slope: l.Slope.Sub(o.Slope), Intercept: l.Intercept.Sub(o.Intercept)}
}

// Scale returns k*l.
func (l Linear) Scale(k decimal.Decimal) Linear {
	return Linear{Slope: l.Slope.Mul(k), Intercept: l.Intercept.Mul(k)}
}

// At evaluates the expression at s.
func (l Linear) At(s decimal.Decimal) decimal.Decimal {
	return l.Slope.Mul(s).Add(l.Intercept)
}

// IsConstant reports whether the slope is zero.
func (l Linear) IsConstant() bool {
	return l.Slope.IsZero()
}

// String renders the expression in strike form: "0", "S(T) - 90",
// "2(100 - S(T))" or a bare number when the slope is zero.
func (l Linear) String() string {
	if l.IsConstant() {
		return formatNumber(l.Intercept)
	}

	// Slope*S + Intercept == Slope*(S - K) with K = -Intercept/Slope.
	k := l.Intercept.Neg().Div(l.Slope)
	m := l.Slope.Abs()

	var body string
	if l.Slope.IsPositive() {
		body = fmt.Sprintf("%s - %s", Symbol, formatNumber(k))
	} else {
		body = fmt.Sprintf("%s - %s", formatNumber(k), Symbol)
	}

	if m.Equal(decimal.NewFromInt(1)) {
		return body
	}
	return fmt.Sprintf("%s(%s)", formatNumber(m), body)
}

// WithCredit renders credit + (l - credit) the way totals are written:
// "5" when flat, "5 + 100 - S(T)" or "-2 + 3(S(T) - 90)" otherwise.
func (l Linear) WithCredit(credit decimal.Decimal) string {
	if l.IsConstant() {
		return formatNumber(l.Intercept)
	}
	return fmt.Sprintf("%s + %s", formatNumber(credit), l.Sub(Constant(credit)).String())
}

// formatNumber prints d with at most six decimals and no trailing zeros.
func formatNumber(d decimal.Decimal) string {
	return d.Round(6).String()
}
