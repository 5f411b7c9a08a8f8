// Package arbitrage implements the arbitrage bounded context: detection of
// static arbitrage among three strikes and assembly of the evaluation.
package arbitrage

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/options-arbitrage/business/arbitrage/di"
	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/options-arbitrage/business/arbitrage/infra"
	payoffDI "github.com/fd1az/options-arbitrage/business/payoff/di"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/di"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
// Depends on the payoff module's Constructor.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbitrageDI.Detector, func(sr di.ServiceRegistry) *app.Detector {
		return app.NewDetector()
	})

	di.RegisterToken(c, arbitrageDI.Evaluator, func(sr di.ServiceRegistry) *app.Evaluator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		evalCfg := app.EvaluatorConfig{
			GridPoints:  cfg.Curve.Points,
			LowerFactor: cfg.Curve.LowerFactorDecimal(),
			UpperFactor: cfg.Curve.UpperFactorDecimal(),
		}

		evaluator, err := app.NewEvaluator(
			arbitrageDI.GetDetector(sr),
			payoffDI.GetConstructor(sr),
			evalCfg,
			log,
		)
		if err != nil {
			panic("failed to create evaluator: " + err.Error())
		}
		return evaluator
	})

	di.RegisterToken(c, arbitrageDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		return infra.NewConsoleReporter(os.Stdout)
	})

	return nil
}

// Startup checks the evaluator against the reference butterfly so a
// misconfigured grid or weight bound fails at boot.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	evaluator := arbitrageDI.GetEvaluator(mono.Services())
	if err := SelfCheck(ctx, evaluator); err != nil {
		return err
	}

	mono.Logger().Info(ctx, "arbitrage module started")
	return nil
}

// ReferenceRequest is strikes 90/100/110 with calls 12/7/1, which violates
// call convexity and nothing else.
func ReferenceRequest() pricingDomain.Request {
	strikes := pricingDomain.NewStrikeSet(
		decimal.NewFromInt(90), decimal.NewFromInt(100), decimal.NewFromInt(110),
	)
	calls := pricingDomain.NewPriceQuote(pricingDomain.Call,
		decimal.NewFromInt(12), decimal.NewFromInt(7), decimal.NewFromInt(1),
	)
	return pricingDomain.NewRequest(pricingDomain.ModeCalls, strikes, calls)
}

// SelfCheck evaluates ReferenceRequest and verifies the single butterfly flag.
func SelfCheck(ctx context.Context, evaluator *app.Evaluator) error {
	eval, err := evaluator.Evaluate(ctx, ReferenceRequest())
	if err != nil {
		return fmt.Errorf("self check: %w", err)
	}
	if len(eval.Flags) != 1 || eval.Flags[0] != domain.FlagCallButterfly || len(eval.Opportunities) != 1 {
		return fmt.Errorf("self check: got flags %v, want [%s]", domain.Tags(eval.Flags), domain.FlagCallButterfly)
	}
	return nil
}
