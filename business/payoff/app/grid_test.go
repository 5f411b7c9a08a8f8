package app

import (
	"testing"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

func TestPriceGrid(t *testing.T) {
	strikes := pricingDomain.NewStrikeSet(d("90"), d("100"), d("110"))

	grid, err := PriceGrid(strikes, 300, d("0.5"), d("1.5"))
	if err != nil {
		t.Fatalf("PriceGrid error: %v", err)
	}
	if len(grid) != 300 {
		t.Fatalf("len = %d, want 300", len(grid))
	}
	if !grid[0].Equal(d("45")) {
		t.Errorf("first = %s, want 45", grid[0])
	}
	if !grid[299].Equal(d("165")) {
		t.Errorf("last = %s, want 165", grid[299])
	}
	for i := 1; i < len(grid); i++ {
		if !grid[i-1].LessThan(grid[i]) {
			t.Fatalf("grid not increasing at %d", i)
		}
	}

	small, err := PriceGrid(strikes, 3, d("0.5"), d("1.5"))
	if err != nil {
		t.Fatalf("PriceGrid error: %v", err)
	}
	for i, want := range []string{"45", "105", "165"} {
		if !small[i].Equal(d(want)) {
			t.Errorf("small[%d] = %s, want %s", i, small[i], want)
		}
	}
}

func TestPriceGrid_Errors(t *testing.T) {
	strikes := pricingDomain.NewStrikeSet(d("90"), d("100"), d("110"))

	tests := []struct {
		name   string
		points int
		lower  string
		upper  string
	}{
		{"one_point", 1, "0.5", "1.5"},
		{"negative_lower", 300, "-0.5", "1.5"},
		{"empty_range", 300, "2", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceGrid(strikes, tt.points, d(tt.lower), d(tt.upper))
			if apperror.GetCode(err) != apperror.CodeInvalidPriceGrid {
				t.Errorf("code = %s, want %s", apperror.GetCode(err), apperror.CodeInvalidPriceGrid)
			}
		})
	}
}

func TestValidatePrices(t *testing.T) {
	if err := ValidatePrices(nil); err == nil {
		t.Error("expected error for empty prices")
	}
	if err := ValidatePrices(mustDecimals("1", "-2")); err == nil {
		t.Error("expected error for negative price")
	}
	if err := ValidatePrices(mustDecimals("5", "5")); err == nil {
		t.Error("expected error for repeated price")
	}
	if err := ValidatePrices(mustDecimals("0", "50", "100")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func mustDecimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = d(v)
	}
	return out
}
