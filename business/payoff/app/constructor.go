// Package app contains the payoff constructor: it turns a detected flag into
// the replicating portfolio that proves it.
package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apm"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// Constructor builds replicating portfolios for detected flags.
type Constructor struct {
	maxDenominator int64
	tracer         apm.Tracer
}

// NewConstructor creates a Constructor. maxDenominator bounds the butterfly's
// middle quantity.
func NewConstructor(maxDenominator int64) *Constructor {
	return &Constructor{
		maxDenominator: maxDenominator,
		tracer:         apm.NewTracer("payoff"),
	}
}

// Build returns the portfolio that locks in the arbitrage named by flag.
// Butterflies also return the weighting used for their legs.
func (c *Constructor) Build(
	ctx context.Context,
	flag arbDomain.Flag,
	req pricingDomain.Request,
) (domain.Portfolio, *arbDomain.Weighting, error) {
	_, span := c.tracer.StartSpanFromContext(ctx, "payoff.Build")
	defer span.End()
	span.SetAttribute(attribute.String("flag", flag.String()))

	quote, ok := req.Quote(flag.Class())
	if !ok {
		err := apperror.Validationf(apperror.CodeMissingQuote, "%s prices required for %s", flag.Class(), flag)
		span.NoticeError(err)
		return domain.Portfolio{}, nil, err
	}
	strikes := req.Strikes()

	switch {
	case flag.IsVertical():
		return vertical(flag, strikes, quote), nil, nil
	case flag.IsButterfly():
		w, err := arbDomain.ResolveWeights(strikes, c.maxDenominator)
		if err != nil {
			span.NoticeError(err)
			return domain.Portfolio{}, nil, err
		}
		span.SetAttribute(attribute.String("weights", w.String()))
		return butterfly(strikes, quote, w), &w, nil
	default:
		err := apperror.Validationf(apperror.CodeUnsupportedFlag, "flag=%q", flag)
		span.NoticeError(err)
		return domain.Portfolio{}, nil, err
	}
}

// vertical buys the strike the flag says is cheap and sells the rich one.
func vertical(flag arbDomain.Flag, strikes pricingDomain.StrikeSet, quote pricingDomain.PriceQuote) domain.Portfolio {
	long, short := 1, 2
	if flag == arbDomain.FlagCallVerticalLow || flag == arbDomain.FlagPutVerticalLow {
		long, short = 2, 1
	}

	x := strikes.Slice()
	return domain.Portfolio{
		Kind:  domain.KindVertical,
		Class: quote.Class,
		Legs: []domain.Leg{
			{Class: quote.Class, Side: domain.Long, Quantity: 1, Strike: x[long-1], Premium: quote.At(long)},
			{Class: quote.Class, Side: domain.Short, Quantity: 1, Strike: x[short-1], Premium: quote.At(short)},
		},
		Breakpoints: x[:2],
	}
}

// butterfly is long N1 at X1, short N2 at X2 and long N3 at X3.
func butterfly(strikes pricingDomain.StrikeSet, quote pricingDomain.PriceQuote, w arbDomain.Weighting) domain.Portfolio {
	return domain.Portfolio{
		Kind:  domain.KindButterfly,
		Class: quote.Class,
		Legs: []domain.Leg{
			{Class: quote.Class, Side: domain.Long, Quantity: w.N1, Strike: strikes.X1, Premium: quote.P1},
			{Class: quote.Class, Side: domain.Short, Quantity: w.N2, Strike: strikes.X2, Premium: quote.P2},
			{Class: quote.Class, Side: domain.Long, Quantity: w.N3, Strike: strikes.X3, Premium: quote.P3},
		},
		Breakpoints: strikes.Slice(),
	}
}
