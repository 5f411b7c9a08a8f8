package domain

import (
	"fmt"
	"math/big"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// DefaultMaxDenominator bounds the butterfly's middle quantity.
const DefaultMaxDenominator = 100

// Weighting holds the butterfly leg quantities: long N1 at X1, short N2 at
// X2, long N3 at X3, with N2 = N1 + N3.
type Weighting struct {
	N1 int64 `json:"n1"`
	N2 int64 `json:"n2"`
	N3 int64 `json:"n3"`
}

func (w Weighting) String() string {
	return fmt.Sprintf("%d:%d:%d", w.N1, w.N2, w.N3)
}

// ResolveWeights approximates (X3-X2)/(X3-X1) by the closest fraction p/q
// with q <= maxDen and returns (p, q, q-p). Quantities are kept >= 1, so a
// ratio that rounds to 0 or 1 is pulled to 1/maxDen or (maxDen-1)/maxDen.
func ResolveWeights(strikes pricingDomain.StrikeSet, maxDen int64) (Weighting, error) {
	if maxDen < 2 {
		return Weighting{}, apperror.Validationf(apperror.CodeWeightResolutionFailed, "max denominator %d < 2", maxDen)
	}
	if !strikes.Increasing() {
		return Weighting{}, apperror.Validationf(apperror.CodeWeightResolutionFailed,
			"strikes not increasing: %s %s %s", strikes.X1, strikes.X2, strikes.X3)
	}

	lambda := new(big.Rat).Quo(strikes.UpperWidth().Rat(), strikes.OuterWidth().Rat())
	approx := limitDenominator(lambda, maxDen)

	p, q := approx.Num().Int64(), approx.Denom().Int64()
	switch {
	case p <= 0:
		p, q = 1, maxDen
	case p >= q:
		p, q = maxDen-1, maxDen
	}
	return Weighting{N1: p, N2: q, N3: q - p}, nil
}

// limitDenominator returns the fraction closest to x with denominator at most
// maxDen, walking the continued fraction expansion of x and comparing the
// last convergent with the best semiconvergent. Ties go to the convergent.
func limitDenominator(x *big.Rat, maxDen int64) *big.Rat {
	limit := big.NewInt(maxDen)
	if x.Denom().Cmp(limit) <= 0 {
		return new(big.Rat).Set(x)
	}

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(x.Num())
	d := new(big.Int).Set(x.Denom())

	for {
		a := new(big.Int).Div(n, d)
		q2 := new(big.Int).Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(limit) > 0 {
			break
		}
		p2 := new(big.Int).Add(p0, new(big.Int).Mul(a, p1))
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}

	k := new(big.Int).Div(new(big.Int).Sub(limit, q0), q1)
	semi := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	conv := new(big.Rat).SetFrac(p1, q1)

	distSemi := new(big.Rat).Abs(new(big.Rat).Sub(semi, x))
	distConv := new(big.Rat).Abs(new(big.Rat).Sub(conv, x))
	if distConv.Cmp(distSemi) <= 0 {
		return conv
	}
	return semi
}
