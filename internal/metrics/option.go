package metrics

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fd1az/options-arbitrage/internal/config"
)

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "customOtelCollector"
	InsecureOtel                = false
	SecureOtel                  = true
)

func NewHoneycombConfig(endpoint, serviceName string) ProviderCfg {
	otelKey := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS_KEY")

	headers := map[string]string{
		"x-honeycomb-team":    otelKey,
		"x-honeycomb-dataset": fmt.Sprintf("%s_metrics", serviceName),
	}

	return ProviderCfg{
		Provider: OtelCollector,
		Endpoint: endpoint,
		Headers:  headers,
	}
}

func NewOtelCollectorConfig(url string, headers map[string]string, insecure bool) ProviderCfg {
	return ProviderCfg{
		Provider: OtelCollector,
		Endpoint: url,
		Headers:  headers,
		Insecure: insecure,
	}
}

func NewPrometheusConfig() ProviderCfg {
	return ProviderCfg{Provider: PrometheusProvider}
}

type Config struct {
	ServiceName string
	Provider    []ProviderCfg
	Registry    *prometheus.Registry
}

type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

type OptionFn func(config Config) Config

func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, provider)

		return config
	}
}

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName

		return config
	}
}

// WithRegistry makes the Prometheus reader register into reg instead of
// the default registry.
func WithRegistry(reg *prometheus.Registry) OptionFn {
	return func(config Config) Config {
		config.Registry = reg

		return config
	}
}

// FromTelemetry derives provider options from the telemetry config. Prometheus
// is always on; honeycomb and newrelic add an OTLP push exporter.
func FromTelemetry(cfg config.TelemetryConfig) []OptionFn {
	opts := []OptionFn{
		WithServiceName(cfg.ServiceName),
		WithProviderConfig(NewPrometheusConfig()),
	}
	if !cfg.Enabled || cfg.OTLPEndpoint == "" {
		return opts
	}

	switch strings.ToLower(cfg.Provider) {
	case "honeycomb":
		opts = append(opts, WithProviderConfig(NewHoneycombConfig(cfg.OTLPEndpoint, cfg.ServiceName)))
	case "newrelic":
		headers := map[string]string{"api-key": os.Getenv("OTEL_EXPORTER_OTLP_HEADERS_KEY")}
		opts = append(opts, WithProviderConfig(NewOtelCollectorConfig(cfg.OTLPEndpoint, headers, SecureOtel)))
	}
	return opts
}

type PromServerConfig struct {
	port     int
	registry *prometheus.Registry
}

type PromOptionFn func(config PromServerConfig) PromServerConfig

func WithPort(port int) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.port = port
		return config
	}
}

func WithGatherer(reg *prometheus.Registry) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.registry = reg
		return config
	}
}
