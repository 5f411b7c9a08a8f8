package app

import (
	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// PriceGrid returns points evenly spaced expiry prices from lower*X1 to
// upper*X3 inclusive. The last point is exactly upper*X3.
func PriceGrid(strikes pricingDomain.StrikeSet, points int, lower, upper decimal.Decimal) ([]decimal.Decimal, error) {
	if points < 2 {
		return nil, apperror.Validationf(apperror.CodeInvalidPriceGrid, "points=%d, need at least 2", points)
	}
	if lower.IsNegative() {
		return nil, apperror.Validationf(apperror.CodeInvalidPriceGrid, "lower factor %s is negative", lower)
	}

	start := strikes.X1.Mul(lower)
	end := strikes.X3.Mul(upper)
	if !start.LessThan(end) {
		return nil, apperror.Validationf(apperror.CodeInvalidPriceGrid, "empty range [%s, %s]", start, end)
	}

	step := end.Sub(start).Div(decimal.NewFromInt(int64(points - 1)))
	grid := make([]decimal.Decimal, points)
	for i := 0; i < points-1; i++ {
		grid[i] = start.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	grid[points-1] = end
	return grid, nil
}

// ValidatePrices checks a caller supplied price sequence: non-empty,
// non-negative and in increasing order.
func ValidatePrices(prices []decimal.Decimal) error {
	if len(prices) == 0 {
		return apperror.Validation(apperror.CodeInvalidPriceGrid, "no prices")
	}
	for i, p := range prices {
		if p.IsNegative() {
			return apperror.Validationf(apperror.CodeInvalidPriceGrid, "price[%d]=%s is negative", i, p)
		}
		if i > 0 && !prices[i-1].LessThan(p) {
			return apperror.Validationf(apperror.CodeInvalidPriceGrid, "prices not increasing at %d", i)
		}
	}
	return nil
}
