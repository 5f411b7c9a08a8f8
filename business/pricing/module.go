// Package pricing implements the pricing bounded context: strikes, option
// quotes and the evaluation request they form.
package pricing

import (
	"context"

	"github.com/fd1az/options-arbitrage/business/pricing/app"
	pricingDI "github.com/fd1az/options-arbitrage/business/pricing/di"
	"github.com/fd1az/options-arbitrage/internal/di"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, pricingDI.RequestService, func(sr di.ServiceRegistry) *app.RequestService {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewRequestService(log)
	})
	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Debug(ctx, "pricing module started")
	return nil
}
