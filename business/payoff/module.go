// Package payoff implements the payoff bounded context: replicating
// portfolios, payoff tables and payoff curves.
package payoff

import (
	"context"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/options-arbitrage/business/payoff/app"
	payoffDI "github.com/fd1az/options-arbitrage/business/payoff/di"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/di"
	"github.com/fd1az/options-arbitrage/internal/monolith"
)

// Module implements the payoff bounded context.
type Module struct{}

// RegisterServices registers all payoff services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, payoffDI.Constructor, func(sr di.ServiceRegistry) *app.Constructor {
		cfg := sr.Get("config").(*config.Config)

		maxDen := cfg.Weights.MaxDenominator
		if maxDen == 0 {
			maxDen = arbDomain.DefaultMaxDenominator
		}
		return app.NewConstructor(maxDen)
	})
	return nil
}

// Startup initializes the payoff module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Debug(ctx, "payoff module started")
	return nil
}
