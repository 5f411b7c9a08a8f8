package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func request(mode pricingDomain.Mode, x [3]string, class pricingDomain.OptionClass, p [3]string) pricingDomain.Request {
	strikes := pricingDomain.NewStrikeSet(d(x[0]), d(x[1]), d(x[2]))
	quote := pricingDomain.NewPriceQuote(class, d(p[0]), d(p[1]), d(p[2]))
	return pricingDomain.NewRequest(mode, strikes, quote)
}

func TestConstructor_Build(t *testing.T) {
	tests := []struct {
		name       string
		flag       arbDomain.Flag
		req        pricingDomain.Request
		wantKind   domain.Kind
		wantCredit string
		wantLong   []string // strikes of long legs
		wantShort  []string
		wantMin    string // worst payoff over the default grid
	}{
		{
			name:       "call_vertical_high",
			flag:       arbDomain.FlagCallVerticalHigh,
			req:        request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"5", "7", "1"}),
			wantKind:   domain.KindVertical,
			wantCredit: "2",
			wantLong:   []string{"90"},
			wantShort:  []string{"100"},
			wantMin:    "2",
		},
		{
			name:       "call_vertical_low",
			flag:       arbDomain.FlagCallVerticalLow,
			req:        request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"20", "5", "1"}),
			wantKind:   domain.KindVertical,
			wantCredit: "15",
			wantLong:   []string{"100"},
			wantShort:  []string{"90"},
			wantMin:    "5",
		},
		{
			name:       "put_vertical_low",
			flag:       arbDomain.FlagPutVerticalLow,
			req:        request(pricingDomain.ModePuts, [3]string{"50", "60", "70"}, pricingDomain.Put, [3]string{"8", "5", "3"}),
			wantKind:   domain.KindVertical,
			wantCredit: "3",
			wantLong:   []string{"60"},
			wantShort:  []string{"50"},
			wantMin:    "3",
		},
		{
			name:       "put_vertical_high",
			flag:       arbDomain.FlagPutVerticalHigh,
			req:        request(pricingDomain.ModePuts, [3]string{"50", "60", "70"}, pricingDomain.Put, [3]string{"1", "15", "20"}),
			wantKind:   domain.KindVertical,
			wantCredit: "14",
			wantLong:   []string{"50"},
			wantShort:  []string{"60"},
			wantMin:    "4",
		},
		{
			name:       "call_butterfly",
			flag:       arbDomain.FlagCallButterfly,
			req:        request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"12", "7", "1"}),
			wantKind:   domain.KindButterfly,
			wantCredit: "1",
			wantLong:   []string{"90", "110"},
			wantShort:  []string{"100"},
			wantMin:    "1",
		},
		{
			name:       "put_butterfly_unequal",
			flag:       arbDomain.FlagPutButterfly,
			req:        request(pricingDomain.ModePuts, [3]string{"90", "100", "130"}, pricingDomain.Put, [3]string{"2", "10", "30"}),
			wantKind:   domain.KindButterfly,
			wantCredit: "4",
			wantLong:   []string{"90", "130"},
			wantShort:  []string{"100"},
			wantMin:    "4",
		},
	}

	c := NewConstructor(arbDomain.DefaultMaxDenominator)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, w, err := c.Build(context.Background(), tt.flag, tt.req)
			if err != nil {
				t.Fatalf("Build error: %v", err)
			}
			if p.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", p.Kind, tt.wantKind)
			}
			if (w != nil) != (tt.wantKind == domain.KindButterfly) {
				t.Errorf("weighting = %v for kind %s", w, p.Kind)
			}
			if got := p.Credit(); !got.Equal(d(tt.wantCredit)) {
				t.Errorf("Credit = %s, want %s", got, tt.wantCredit)
			}

			var long, short []string
			for _, l := range p.Legs {
				if l.Side == domain.Long {
					long = append(long, l.Strike.String())
				} else {
					short = append(short, l.Strike.String())
				}
			}
			assertStrings(t, "long", long, tt.wantLong)
			assertStrings(t, "short", short, tt.wantShort)

			grid, err := PriceGrid(tt.req.Strikes(), 300, d("0.5"), d("1.5"))
			if err != nil {
				t.Fatalf("PriceGrid error: %v", err)
			}
			curve := p.Curve(grid)
			worst := curve.Payoffs[0]
			for _, v := range curve.Payoffs {
				if v.LessThan(worst) {
					worst = v
				}
			}
			if !worst.Equal(d(tt.wantMin)) {
				t.Errorf("min payoff = %s, want %s", worst, tt.wantMin)
			}
		})
	}
}

func TestConstructor_ButterflyTable(t *testing.T) {
	c := NewConstructor(arbDomain.DefaultMaxDenominator)
	req := request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"12", "7", "1"})

	p, _, err := c.Build(context.Background(), arbDomain.FlagCallButterfly, req)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := [][]string{
		{"Long 90-strike call", "-12", "0", "S(T) - 90", "S(T) - 90", "S(T) - 90"},
		{"Short 2x 100-strike call", "14", "0", "0", "2(100 - S(T))", "2(100 - S(T))"},
		{"Long 110-strike call", "-1", "0", "0", "0", "S(T) - 110"},
		{"Total", "1", "1", "1 + S(T) - 90", "1 + 110 - S(T)", "1"},
	}
	got := p.Table(arbDomain.FlagCallButterfly.Title()).Records()
	if len(got) != len(want) {
		t.Fatalf("records = %v", got)
	}
	for i := range want {
		assertStrings(t, want[i][0], got[i], want[i])
	}
}

func TestConstructor_Continuity(t *testing.T) {
	c := NewConstructor(arbDomain.DefaultMaxDenominator)
	eps := d("0.000000001")
	tolerance := d("0.000001")

	cases := []struct {
		flag arbDomain.Flag
		req  pricingDomain.Request
	}{
		{arbDomain.FlagCallVerticalHigh, request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"5", "7", "1"})},
		{arbDomain.FlagPutVerticalHigh, request(pricingDomain.ModePuts, [3]string{"50", "60", "70"}, pricingDomain.Put, [3]string{"1", "15", "20"})},
		{arbDomain.FlagCallButterfly, request(pricingDomain.ModeCalls, [3]string{"10", "17", "310"}, pricingDomain.Call, [3]string{"100", "95", "1"})},
		{arbDomain.FlagPutButterfly, request(pricingDomain.ModePuts, [3]string{"90", "100", "130"}, pricingDomain.Put, [3]string{"2", "10", "30"})},
	}

	for _, tc := range cases {
		p, _, err := c.Build(context.Background(), tc.flag, tc.req)
		if err != nil {
			t.Fatalf("%s: Build error: %v", tc.flag, err)
		}
		for _, x := range p.Breakpoints {
			below := p.Payoff(x.Sub(eps))
			above := p.Payoff(x.Add(eps))
			if below.Sub(above).Abs().GreaterThan(tolerance) {
				t.Errorf("%s: jump at %s: %s vs %s", tc.flag, x, below, above)
			}
		}
	}
}

func TestConstructor_Errors(t *testing.T) {
	c := NewConstructor(arbDomain.DefaultMaxDenominator)
	callsOnly := request(pricingDomain.ModeCalls, [3]string{"90", "100", "110"}, pricingDomain.Call, [3]string{"12", "7", "1"})

	tests := []struct {
		name     string
		flag     arbDomain.Flag
		wantCode apperror.Code
	}{
		{"put_flag_without_puts", arbDomain.FlagPutButterfly, apperror.CodeMissingQuote},
		{"unknown_flag", arbDomain.Flag("calendar"), apperror.CodeUnsupportedFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Build(context.Background(), tt.flag, callsOnly)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperror.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %v, want %v", label, got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", label, i, got[i], want[i])
		}
	}
}
