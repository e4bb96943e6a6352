package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/vlint/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Logging configuration
	Log LogConfig

	// Lint runner configuration
	Runner RunnerConfig

	// Server configuration
	Server ServerConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  observability.LogLevel
	Format observability.LogFormat
}

// RunnerConfig holds settings for parallel linting
type RunnerConfig struct {
	Workers   int
	CacheSize int
	CacheTTL  time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// MaxBodyBytes bounds the size of a submitted source file.
	MaxBodyBytes int64
	// RateLimit is requests per minute per client; 0 disables limiting.
	RateLimit int
	RateBurst int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
	OTelSampleRatio    float64
	OTelMetricInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Log:           loadLogConfig(),
		Runner:        loadRunnerConfig(),
		Server:        loadServerConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadLogConfig loads logger configuration from environment
func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  parseLogLevel(getEnv("VLINT_LOG_LEVEL", "info")),
		Format: observability.LogFormat(strings.ToLower(getEnv("VLINT_LOG_FORMAT", string(observability.TextFormat)))),
	}
}

// loadRunnerConfig loads runner configuration from environment
func loadRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Workers:   getEnvInt("VLINT_WORKERS", runtime.NumCPU()),
		CacheSize: getEnvInt("VLINT_CACHE_SIZE", 1024),
		CacheTTL:  getEnvDuration("VLINT_CACHE_TTL", 10*time.Minute),
	}
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            getEnv("VLINT_HTTP_ADDR", ":8080"),
		ReadTimeout:     getEnvDuration("VLINT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("VLINT_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("VLINT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("VLINT_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    getEnvInt64("VLINT_MAX_BODY_BYTES", 4<<20),
		RateLimit:       getEnvInt("VLINT_RATE_LIMIT", 0),
		RateBurst:       getEnvInt("VLINT_RATE_BURST", 0),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		MetricsEnabled:     getEnvBool("VLINT_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("VLINT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("VLINT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("VLINT_OTEL_SERVICE_NAME", observability.DefaultServiceName),
		OTelServiceVersion: getEnv("VLINT_OTEL_SERVICE_VERSION", ""),
		OTelInsecure:       getEnvBool("VLINT_OTEL_INSECURE", true),
		OTelSampleRatio:    getEnvFloat("VLINT_OTEL_SAMPLE_RATIO", 1),
		OTelMetricInterval: getEnvDuration("VLINT_OTEL_METRIC_INTERVAL", observability.DefaultMetricInterval),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Format {
	case observability.JSONFormat, observability.TextFormat:
	default:
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Log.Format)
	}

	if c.Runner.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Runner.Workers)
	}
	if c.Runner.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.Runner.CacheSize)
	}
	if c.Runner.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got %s", c.Runner.CacheTTL)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("rate limit and burst must not be negative")
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
		if c.Observability.OTelSampleRatio < 0 || c.Observability.OTelSampleRatio > 1 {
			return fmt.Errorf("OpenTelemetry sample ratio must be between 0 and 1, got %g", c.Observability.OTelSampleRatio)
		}
	}

	return nil
}

// OTelConfig converts the settings for observability.InitOTel
func (c *Config) OTelConfig() observability.OTelConfig {
	return observability.OTelConfig{
		Enabled:        c.Observability.OTelEnabled,
		Endpoint:       c.Observability.OTelEndpoint,
		ServiceName:    c.Observability.OTelServiceName,
		ServiceVersion: c.Observability.OTelServiceVersion,
		Insecure:       c.Observability.OTelInsecure,
		SampleRatio:    c.Observability.OTelSampleRatio,
		MetricInterval: c.Observability.OTelMetricInterval,
	}
}

// NewLogger builds the process logger from the log settings
func (c *Config) NewLogger() *observability.Logger {
	return observability.NewLoggerWithFormat(c.Log.Level, c.Log.Format, os.Stderr)
}

// parseLogLevel parses a log level string, falling back to info
func parseLogLevel(level string) observability.LogLevel {
	parsed, err := observability.ParseLogLevel(level)
	if err != nil {
		return observability.InfoLevel
	}
	return parsed
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
