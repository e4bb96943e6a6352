// Package server exposes the linter and the token annotator over HTTP.
//
// # Endpoints
//
//	POST /v1/lint          {"filename", "contents", "ruleset", "rules"} -> file report
//	POST /v1/annotate      {"contents", "style"} -> per-token spacing decisions
//	GET  /v1/rules         rule descriptors, ?kind=line&markdown=true
//	GET  /v1/rules/{name}  one rule descriptor
//	GET  /healthz          readiness, also /healthz/live and /healthz/ready
//	GET  /metrics          Prometheus exposition, when metrics are enabled
//
// Malformed bodies, unknown rules and invalid rule sets are answered with
// 400 and {"error": "..."}; sources that fail to scan get 422.
//
// # Usage
//
//	srv := server.New(rules.Default(), projectCfg,
//		server.WithLogger(logger),
//		server.WithMetrics(metrics, registry),
//	)
//	err := srv.Run(ctx, cfg.Server)
package server
