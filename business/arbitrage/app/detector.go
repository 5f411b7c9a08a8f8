// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apm"
)

// Detector checks option prices against the static no-arbitrage bounds.
type Detector struct {
	tracer apm.Tracer
}

// NewDetector creates a new arbitrage Detector.
func NewDetector() *Detector {
	return &Detector{tracer: apm.NewTracer(tracerName)}
}

// Detect validates req and returns the violated rules in evaluation order.
// An empty result means no arbitrage.
func (d *Detector) Detect(ctx context.Context, req pricingDomain.Request) ([]domain.Flag, error) {
	_, span := d.tracer.StartSpanFromContext(ctx, "arbitrage.Detect")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.NoticeError(err)
		return nil, err
	}

	flags := DetectFlags(req)
	span.SetAttributes(
		attribute.String("mode", string(req.Mode)),
		attribute.StringSlice("flags", domain.Tags(flags)),
	)
	return flags, nil
}

// DetectFlags runs every rule the request's mode enables. The request must
// already be valid.
func DetectFlags(req pricingDomain.Request) []domain.Flag {
	strikes := req.Strikes()
	flags := []domain.Flag{}

	if q, ok := req.Quote(pricingDomain.Call); ok && req.Mode.Includes(pricingDomain.Call) {
		flags = append(flags, callFlags(strikes, q)...)
	}
	if q, ok := req.Quote(pricingDomain.Put); ok && req.Mode.Includes(pricingDomain.Put) {
		flags = append(flags, putFlags(strikes, q)...)
	}
	return flags
}

// Convexity checks compare slopes by cross-multiplying with the strike
// widths, which are positive for increasing strikes.
func callFlags(x pricingDomain.StrikeSet, c pricingDomain.PriceQuote) []domain.Flag {
	var flags []domain.Flag
	lower, upper := x.LowerWidth(), x.UpperWidth()

	if c.P1.LessThan(c.P2) {
		flags = append(flags, domain.FlagCallVerticalHigh)
	}
	if c.P1.Sub(c.P2).GreaterThan(lower) {
		flags = append(flags, domain.FlagCallVerticalLow)
	}
	// (C1-C2)/(X2-X1) < (C2-C3)/(X3-X2)
	if c.P1.Sub(c.P2).Mul(upper).LessThan(c.P2.Sub(c.P3).Mul(lower)) {
		flags = append(flags, domain.FlagCallButterfly)
	}
	return flags
}

func putFlags(x pricingDomain.StrikeSet, p pricingDomain.PriceQuote) []domain.Flag {
	var flags []domain.Flag
	lower, upper := x.LowerWidth(), x.UpperWidth()

	if p.P1.GreaterThan(p.P2) {
		flags = append(flags, domain.FlagPutVerticalLow)
	}
	if p.P2.Sub(p.P1).GreaterThan(lower) {
		flags = append(flags, domain.FlagPutVerticalHigh)
	}
	// (P2-P1)/(X2-X1) > (P3-P2)/(X3-X2)
	if p.P2.Sub(p.P1).Mul(upper).GreaterThan(p.P3.Sub(p.P2).Mul(lower)) {
		flags = append(flags, domain.FlagPutButterfly)
	}
	return flags
}
