package app

import (
	"context"

	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
)

// Reporter presents a finished evaluation.
type Reporter interface {
	// Report renders flags, payoff tables and curve summaries.
	Report(ctx context.Context, eval *domain.Evaluation) error
}

// CurveExporter persists a payoff curve under a name and returns its location.
type CurveExporter interface {
	Export(name string, curve payoffDomain.Curve) (string, error)
}
