package apm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

type Provider string

const (
	NewRelicProvider  Provider = "NEWRELIC_PROVIDER"
	ZipkinProvider    Provider = "ZIPKIN_PROVIDER"
	HoneycombProvider Provider = "HONEYCOMB_PROVIDER"
	ConsoleProvider   Provider = "CONSOLE_PROVIDER"
	EmptyProvider     Provider = "EMPTY_PROVIDER"
)

// ProviderFromConfig maps a telemetry.provider value to a Provider.
// Unknown and empty names map to EmptyProvider.
func ProviderFromConfig(name string) Provider {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zipkin":
		return ZipkinProvider
	case "console", "stdout":
		return ConsoleProvider
	case "honeycomb":
		return HoneycombProvider
	case "newrelic":
		return NewRelicProvider
	default:
		return EmptyProvider
	}
}

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

type TracerOptions struct {
	exporter           sdktrace.SpanExporter
	tracerProviderName string
	serviceName        string
	useEmpty           bool
	err                error
}

type TracerOption func(*TracerOptions)

// WithTelemetry selects the exporter named by cfg.Provider, sending to
// cfg.OTLPEndpoint. A disabled config selects EmptyProvider.
func WithTelemetry(cfg config.TelemetryConfig, log logger.LoggerInterface) TracerOption {
	provider := EmptyProvider
	if cfg.Enabled {
		provider = ProviderFromConfig(cfg.Provider)
	}
	return func(option *TracerOptions) {
		option.serviceName = cfg.ServiceName
		WithProvider(provider, cfg.OTLPEndpoint, log)(option)
	}
}

func WithProvider(provider Provider, endpoint string, log logger.LoggerInterface) TracerOption {
	switch provider {
	case NewRelicProvider:
		return useNewRelic(endpoint)
	case ZipkinProvider:
		return useZipkin(endpoint)
	case ConsoleProvider:
		return useConsole()
	case HoneycombProvider:
		return useHoneycomb(endpoint, log)
	case EmptyProvider:
		return useEmpty()
	}

	log.Warn(context.Background(), "TracerProvider not found, using EmptyProvider", "provider", provider)
	return useEmpty()
}

func useEmpty() TracerOption {
	return func(option *TracerOptions) {
		option.useEmpty = true
		option.tracerProviderName = string(EmptyProvider)
	}
}

func useConsole() TracerOption {
	return func(option *TracerOptions) {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			option.err = err
			return
		}

		option.exporter = exp
		option.tracerProviderName = string(ConsoleProvider)
	}
}

func useZipkin(endpoint string) TracerOption {
	return func(option *TracerOptions) {
		if endpoint == "" {
			endpoint = "http://localhost:9411/api/v2/spans"
		}

		exp, err := zipkin.New(endpoint)
		if err != nil {
			option.err = err
			return
		}

		option.exporter = exp
		option.tracerProviderName = string(ZipkinProvider)
	}
}

func useNewRelic(endpoint string) TracerOption {
	return func(option *TracerOptions) {
		key := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS_KEY")

		exp, err := otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithHeaders(map[string]string{"api-key": key}),
		)
		if err != nil {
			option.err = err
			return
		}

		option.exporter = exp
		option.tracerProviderName = string(NewRelicProvider)
	}
}

func useHoneycomb(endpoint string, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) {
		headers := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")
		protocol := os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL")

		headerKeyValue := strings.SplitN(headers, "=", 2)
		if len(headerKeyValue) != 2 {
			option.err = fmt.Errorf("invalid OTEL_EXPORTER_OTLP_HEADERS format, expected key=value")
			return
		}

		var exp sdktrace.SpanExporter
		var err error

		if protocol == "http/protobuf" {
			log.Info(context.Background(), "Initializing Honeycomb with HTTP/Protobuf exporter", "endpoint", endpoint)
			exp, err = useHoneycombHTTP(endpoint, headerKeyValue)
		} else {
			log.Info(context.Background(), "Initializing Honeycomb with gRPC exporter", "endpoint", endpoint)
			exp, err = useHoneycombGRPC(endpoint, headerKeyValue)
		}
		if err != nil {
			option.err = err
			return
		}

		option.exporter = exp
		option.tracerProviderName = string(HoneycombProvider)
	}
}

func useHoneycombHTTP(url string, headerKeyValue []string) (sdktrace.SpanExporter, error) {
	return otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpointURL(url),
		otlptracehttp.WithHeaders(map[string]string{
			headerKeyValue[0]: headerKeyValue[1], // x-honeycomb-team header
		}),
	)
}

func useHoneycombGRPC(url string, headerKeyValue []string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(
		context.Background(),
		otlptracegrpc.WithEndpointURL(url),
		otlptracegrpc.WithHeaders(map[string]string{
			headerKeyValue[0]: headerKeyValue[1], // x-honeycomb-team header
		}),
	)
}

// NewTraceProvider installs the global tracer provider built from options.
// Without options tracing is disabled.
func NewTraceProvider(options ...TracerOption) (TraceProvider, error) {
	opts := &TracerOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.err != nil {
		return nil, fmt.Errorf("apm: %s exporter: %w", opts.tracerProviderName, opts.err)
	}
	if opts.useEmpty || opts.exporter == nil {
		return NewEmptyTraceProvider(), nil
	}

	serviceName := opts.serviceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}

	rsrc, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		))
	if err != nil {
		// schema conflict with resource.Default; fall back to the default resource
		rsrc = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(opts.exporter),
		sdktrace.WithResource(rsrc),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{tp}, nil
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	return o.tp.Shutdown(ctx)
}
