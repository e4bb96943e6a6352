// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates process settings for the vlint CLI and
// server. Rule selection lives in the project file (.vlint.yaml, see
// pkg/linter); command line flags override both.
//
// # Configuration Structure
//
// Logging:
//
//	VLINT_LOG_LEVEL="info"    # debug, info, warn, error
//	VLINT_LOG_FORMAT="text"   # text, json
//
// Runner:
//
//	VLINT_WORKERS="8"         # defaults to the CPU count
//	VLINT_CACHE_SIZE="1024"   # 0 disables the report cache
//	VLINT_CACHE_TTL="10m"
//
// Server:
//
//	VLINT_HTTP_ADDR=":8080"
//	VLINT_READ_TIMEOUT="15s"
//	VLINT_WRITE_TIMEOUT="15s"
//	VLINT_SHUTDOWN_TIMEOUT="30s"
//	VLINT_MAX_BODY_BYTES="4194304"
//	VLINT_RATE_LIMIT="600"    # requests per minute per client, 0 disables
//	VLINT_RATE_BURST="60"
//
// Observability:
//
//	VLINT_METRICS_ENABLED="true"
//	VLINT_OTEL_ENABLED="true"
//	VLINT_OTEL_ENDPOINT="otel-collector:4317"
//	VLINT_OTEL_INSECURE="true"
//	VLINT_OTEL_SAMPLE_RATIO="0.25"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		return err
//	}
//	logger := cfg.NewLogger()
//	providers, err := observability.InitOTel(ctx, cfg.OTelConfig(), logger)
//
// # Related Packages
//
//   - pkg/observability: Uses logging and OpenTelemetry configuration
//   - pkg/runner: Uses worker and cache configuration
package config
