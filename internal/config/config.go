// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Curve     CurveConfig     `mapstructure:"curve"`
	Weights   WeightsConfig   `mapstructure:"weights"`
	Server    ServerConfig    `mapstructure:"server"`
	Health    HealthConfig    `mapstructure:"health"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// CurveConfig controls the default underlying-price grid.
type CurveConfig struct {
	Points      int     `mapstructure:"points"`
	LowerFactor float64 `mapstructure:"lower_factor"` // grid starts at LowerFactor * X1
	UpperFactor float64 `mapstructure:"upper_factor"` // grid ends at UpperFactor * X3
}

// LowerFactorDecimal returns the lower grid factor as decimal.Decimal.
func (c *CurveConfig) LowerFactorDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.LowerFactor)
}

// UpperFactorDecimal returns the upper grid factor as decimal.Decimal.
func (c *CurveConfig) UpperFactorDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.UpperFactor)
}

// WeightsConfig bounds the butterfly weight search.
type WeightsConfig struct {
	MaxDenominator int64 `mapstructure:"max_denominator"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	CORSOrigins       []string      `mapstructure:"cors_origins"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	StreamPing        time.Duration `mapstructure:"stream_ping"`
}

// HealthConfig holds the health probe server settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Provider       string `mapstructure:"provider"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("OPTARB")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: defaults do not unmarshal: " + err.Error())
	}
	return &cfg
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "OPTARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "OPTARB_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "OPTARB_LOG_LEVEL", "LOG_LEVEL")

	// Curve
	v.BindEnv("curve.points", "OPTARB_CURVE_POINTS")

	// Weights
	v.BindEnv("weights.max_denominator", "OPTARB_MAX_DENOMINATOR")

	// Server
	v.BindEnv("server.port", "OPTARB_PORT", "PORT")
	v.BindEnv("server.requests_per_minute", "OPTARB_RPM")

	// Health
	v.BindEnv("health.port", "OPTARB_HEALTH_PORT")

	// Telemetry
	v.BindEnv("telemetry.enabled", "OPTARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.provider", "OPTARB_OTEL_PROVIDER")
	v.BindEnv("telemetry.service_name", "OPTARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "OPTARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "optarb")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Curve defaults: linspace(0.5*X1, 1.5*X3, 300)
	v.SetDefault("curve.points", 300)
	v.SetDefault("curve.lower_factor", 0.5)
	v.SetDefault("curve.upper_factor", 1.5)

	v.SetDefault("weights.max_denominator", 100)

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.requests_per_minute", 600)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.stream_ping", "30s")

	v.SetDefault("health.port", 8081)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.provider", "zipkin")
	v.SetDefault("telemetry.service_name", "optarb")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Curve.Points < 2 {
		return fmt.Errorf("curve.points must be at least 2, got %d", c.Curve.Points)
	}
	if c.Curve.LowerFactor <= 0 || c.Curve.UpperFactor <= 0 {
		return fmt.Errorf("curve factors must be positive")
	}
	if c.Curve.LowerFactor >= c.Curve.UpperFactor {
		return fmt.Errorf("curve.lower_factor (%v) must be below curve.upper_factor (%v)",
			c.Curve.LowerFactor, c.Curve.UpperFactor)
	}
	if c.Weights.MaxDenominator < 2 {
		return fmt.Errorf("weights.max_denominator must be at least 2, got %d", c.Weights.MaxDenominator)
	}
	if c.Server.RequestsPerMinute < 0 {
		return fmt.Errorf("server.requests_per_minute cannot be negative")
	}
	switch c.Telemetry.Provider {
	case "zipkin", "console", "honeycomb", "newrelic", "empty":
	default:
		return fmt.Errorf("unknown telemetry.provider: %s", c.Telemetry.Provider)
	}
	return nil
}
