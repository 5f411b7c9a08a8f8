// Package server exposes the evaluator over HTTP and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/ratelimit"
)

// Evaluator is the slice of the arbitrage evaluator the API serves.
type Evaluator interface {
	Evaluate(ctx context.Context, req pricingDomain.Request) (*arbDomain.Evaluation, error)
	Curve(ctx context.Context, req pricingDomain.Request, flag arbDomain.Flag, prices []decimal.Decimal) (payoffDomain.Curve, error)
}

// Server is the evaluation API.
type Server struct {
	config     config.ServerConfig
	evaluator  Evaluator
	logger     logger.LoggerInterface
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server with all routes registered.
func New(cfg config.ServerConfig, evaluator Evaluator, log logger.LoggerInterface) *Server {
	s := &Server{
		config:    cfg,
		evaluator: evaluator,
		logger:    log,
	}
	s.router = s.routes()

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 10 * time.Second
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           otelhttp.NewHandler(s.router, "optarb.api"),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(s.logger.Slog()))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var limiter *ratelimit.Keyed
	if s.config.RequestsPerMinute > 0 {
		limiter = ratelimit.NewKeyed(s.config.RequestsPerMinute, 10*time.Minute)
	}

	writeTimeout := s.config.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(limiter))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(writeTimeout))
			r.Get("/flags", s.handleFlags)
			r.Post("/evaluate", s.handleEvaluate)
			r.Post("/curve", s.handleCurve)
		})

		// long lived, no request timeout
		r.Get("/stream", s.handleStream)
	})

	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "API server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "API server shutting down")
	return s.httpServer.Shutdown(ctx)
}
