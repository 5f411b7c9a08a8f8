// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"errors"

	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/di"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// App implements the Monolith interface.
type App struct {
	config    *config.Config
	logger    logger.LoggerInterface
	container di.Container
	closers   []func() error
}

// New creates a new Monolith instance with config and logger registered
// as the shared "config" and "logger" services.
func New(cfg *config.Config, log logger.LoggerInterface) *App {
	container := di.NewContainer()

	container.Register("config", cfg)
	container.Register("logger", log)

	return &App{
		config:    cfg,
		logger:    log,
		container: container,
	}
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *App) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *App) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules, in order.
func (a *App) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules, in order.
func (a *App) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// OnClose registers a shutdown hook. Hooks run in reverse order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close runs every shutdown hook and joins their errors.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
