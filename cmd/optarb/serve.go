package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fd1az/options-arbitrage/business/arbitrage"
	arbitrageDI "github.com/fd1az/options-arbitrage/business/arbitrage/di"
	"github.com/fd1az/options-arbitrage/internal/apm"
	"github.com/fd1az/options-arbitrage/internal/health"
	"github.com/fd1az/options-arbitrage/internal/metrics"
	"github.com/fd1az/options-arbitrage/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation API with health probes and Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), root)
		},
	}
}

func serve(ctx context.Context, root *rootOptions) error {
	mono, err := bootstrap(ctx, root, os.Stderr)
	if err != nil {
		return err
	}
	defer mono.Close()

	cfg := mono.Config()
	log := mono.Logger()
	log.Info(ctx, "starting option arbitrage API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Tracing: exporter picked by telemetry.provider, no-op when disabled
	traceProvider, err := apm.NewTraceProvider(apm.WithTelemetry(cfg.Telemetry, log))
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	mono.OnClose(traceProvider.Stop)

	meterProvider, err := metrics.NewMetricProvider(metrics.FromTelemetry(cfg.Telemetry)...)
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	mono.OnClose(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return meterProvider.Shutdown(ctx)
	})

	evaluator := arbitrageDI.GetEvaluator(mono.Services())

	healthServer := health.NewServer(cfg.Health.Port, version, log)
	healthServer.RegisterCheck("evaluator", func(ctx context.Context) (bool, string) {
		if err := arbitrage.SelfCheck(ctx, evaluator); err != nil {
			return false, err.Error()
		}
		return true, "reference butterfly detected"
	})
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	}

	promServer := metrics.NewPromServer(log, metrics.WithPort(cfg.Telemetry.PrometheusPort))
	api := server.New(cfg.Server, evaluator, log)

	errCh := make(chan error, 2)
	go func() { errCh <- promServer.Start() }()
	go func() { errCh <- api.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutdown signal received")
	case runErr = <-errCh:
		log.Error(ctx, "server stopped", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		runErr,
		api.Shutdown(shutdownCtx),
		promServer.Shutdown(shutdownCtx),
		healthServer.Stop(shutdownCtx),
	)
}
