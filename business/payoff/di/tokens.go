// Package di contains dependency injection tokens for the payoff context.
package di

import (
	"github.com/fd1az/options-arbitrage/business/payoff/app"
	"github.com/fd1az/options-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Constructor = di.NewToken[*app.Constructor]("payoff.Constructor")
)

func GetConstructor(c di.ServiceRegistry) *app.Constructor {
	return di.GetToken(c, Constructor)
}
