// Package metrics sets up the OpenTelemetry meter provider and the
// Prometheus scrape endpoint.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metric2 "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/fd1az/options-arbitrage/internal/logger"
)

const defaultPromPort = 9090

type MetricProvider interface {
	Meter(name string, options ...metric.MeterOption) metric.Meter
	Shutdown(ctx context.Context) error
}

func getReaders(ctx context.Context, cfg Config) ([]metric2.Reader, error) {
	var readers []metric2.Reader

	providers := cfg.Provider
	if len(providers) == 0 {
		providers = []ProviderCfg{NewPrometheusConfig()}
	}

	for _, provider := range providers {
		switch provider.Provider {
		case PrometheusProvider:
			var opts []prometheus.Option
			if cfg.Registry != nil {
				opts = append(opts, prometheus.WithRegisterer(cfg.Registry))
			}

			promExporter, err := prometheus.New(opts...)
			if err != nil {
				return nil, fmt.Errorf("prometheus exporter: %w", err)
			}

			readers = append(readers, promExporter)
		case OtelCollector:
			opts := []otlpmetricgrpc.Option{
				otlpmetricgrpc.WithEndpointURL(provider.Endpoint),
				otlpmetricgrpc.WithHeaders(provider.Headers),
			}

			if provider.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}

			exp, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				return nil, fmt.Errorf("otlp metric exporter: %w", err)
			}

			readers = append(readers, metric2.NewPeriodicReader(exp))
		}
	}

	return readers, nil
}

// NewMetricProvider builds a meter provider from options and installs it
// globally. Without provider options a Prometheus reader is used.
func NewMetricProvider(options ...OptionFn) (MetricProvider, error) {
	ctx := context.Background()

	var cfg Config
	for _, opt := range options {
		cfg = opt(cfg)
	}

	readers, err := getReaders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var metricsOps []metric2.Option
	for _, reader := range readers {
		metricsOps = append(metricsOps, metric2.WithReader(reader))
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	metricsOps = append(metricsOps, metric2.WithResource(
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	))

	meterProvider := metric2.NewMeterProvider(metricsOps...)

	otel.SetMeterProvider(meterProvider)

	return meterProvider, nil
}

// PromServer serves /metrics on its own port.
type PromServer struct {
	server *http.Server
	log    logger.LoggerInterface
}

// NewPromServer creates the scrape server. It does not listen until Start.
func NewPromServer(log logger.LoggerInterface, opt ...PromOptionFn) *PromServer {
	cfg := PromServerConfig{port: defaultPromPort}
	for _, o := range opt {
		cfg = o(cfg)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler(cfg))

	return &PromServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

func handler(cfg PromServerConfig) http.Handler {
	if cfg.registry != nil {
		return promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// Handler returns the scrape handler, for tests and embedding.
func (s *PromServer) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks serving metrics until Shutdown.
func (s *PromServer) Start() error {
	s.log.Info(context.Background(), "serving metrics", "addr", s.server.Addr, "path", "/metrics")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: listen: %w", err)
	}
	return nil
}

func (s *PromServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
