// Package domain contains the core domain types for the arbitrage context.
package domain

import (
	"time"

	"github.com/google/uuid"

	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

// Opportunity is one detected arbitrage together with the portfolio that
// locks it in and the evidence for it.
type Opportunity struct {
	Flag      Flag
	Title     string
	Portfolio payoffDomain.Portfolio
	Weighting *Weighting // butterflies only
	Table     payoffDomain.PayoffTable
	Curve     payoffDomain.Curve
	Summary   payoffDomain.Summary
}

// Class returns the option class traded by the opportunity.
func (o Opportunity) Class() pricingDomain.OptionClass {
	return o.Flag.Class()
}

// Evaluation is the complete result of evaluating one request.
type Evaluation struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	Request       pricingDomain.Request
	Flags         []Flag
	Opportunities []Opportunity
}

// NewEvaluation creates an Evaluation with a fresh ID and timestamp.
func NewEvaluation(req pricingDomain.Request, flags []Flag) *Evaluation {
	return &Evaluation{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Request:   req,
		Flags:     flags,
	}
}

// HasArbitrage returns true if any rule was violated.
func (e *Evaluation) HasArbitrage() bool {
	return len(e.Flags) > 0
}

// FlagsFor returns the flags of one option class, in order.
func (e *Evaluation) FlagsFor(class pricingDomain.OptionClass) []Flag {
	var out []Flag
	for _, f := range e.Flags {
		if f.Class() == class {
			out = append(out, f)
		}
	}
	return out
}

// OpportunitiesFor returns the opportunities of one option class, in order.
func (e *Evaluation) OpportunitiesFor(class pricingDomain.OptionClass) []Opportunity {
	var out []Opportunity
	for _, o := range e.Opportunities {
		if o.Class() == class {
			out = append(out, o)
		}
	}
	return out
}
