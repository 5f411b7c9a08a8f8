// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/options-arbitrage/business/pricing/app"
	"github.com/fd1az/options-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	RequestService = di.NewToken[*app.RequestService]("pricing.RequestService")
)

func GetRequestService(c di.ServiceRegistry) *app.RequestService {
	return di.GetToken(c, RequestService)
}
