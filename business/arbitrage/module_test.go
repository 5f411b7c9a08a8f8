package arbitrage

import (
	"context"
	"testing"

	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/options-arbitrage/business/arbitrage/di"
	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/options-arbitrage/business/payoff"
	payoffApp "github.com/fd1az/options-arbitrage/business/payoff/app"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/monolith"
)

func TestSelfCheck(t *testing.T) {
	evaluator, err := app.NewEvaluator(
		app.NewDetector(),
		payoffApp.NewConstructor(domain.DefaultMaxDenominator),
		app.DefaultEvaluatorConfig(),
		logger.NewDiscard(),
	)
	if err != nil {
		t.Fatalf("NewEvaluator error: %v", err)
	}

	if err := SelfCheck(context.Background(), evaluator); err != nil {
		t.Errorf("SelfCheck: %v", err)
	}
}

func TestModule_Wiring(t *testing.T) {
	mono := monolith.New(config.Default(), logger.NewDiscard())
	modules := []monolith.Module{&payoff.Module{}, &Module{}}

	if err := mono.RegisterModules(modules...); err != nil {
		t.Fatalf("RegisterModules: %v", err)
	}
	if err := mono.StartModules(context.Background(), modules...); err != nil {
		t.Fatalf("StartModules: %v", err)
	}

	evaluator := arbitrageDI.GetEvaluator(mono.Services())
	if evaluator != arbitrageDI.GetEvaluator(mono.Services()) {
		t.Error("evaluator is not a singleton")
	}

	grid, err := evaluator.Grid(ReferenceRequest().Strikes())
	if err != nil {
		t.Fatalf("Grid error: %v", err)
	}
	if len(grid) != 300 {
		t.Errorf("len(grid) = %d, want 300", len(grid))
	}
}
