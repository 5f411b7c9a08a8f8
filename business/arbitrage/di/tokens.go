// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	"github.com/fd1az/options-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Evaluator = di.NewToken[*app.Evaluator]("arbitrage.Evaluator")
	Reporter  = di.NewToken[app.Reporter]("arbitrage.Reporter")
)

// Private dependency tokens - internal to arbitrage module
var (
	Detector = di.NewToken[*app.Detector]("arbitrage:detector")
)

// Helper functions for type-safe access
func GetEvaluator(c di.ServiceRegistry) *app.Evaluator {
	return di.GetToken(c, Evaluator)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetDetector(c di.ServiceRegistry) *app.Detector {
	return di.GetToken(c, Detector)
}
