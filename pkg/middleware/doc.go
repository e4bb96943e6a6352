// Package middleware provides HTTP rate limiting for the vlint server.
//
// # Overview
//
// RateLimiter keeps one token bucket per client, identified by the first
// X-Forwarded-For hop, X-Real-IP or the remote host. Buckets live in a
// bounded expirable LRU so idle clients are forgotten.
//
// # Usage
//
//	limiter := middleware.NewRateLimiter(&middleware.RateLimitConfig{
//		RequestsPerWindow: 600,
//		WindowDuration:    time.Minute,
//		BurstSize:         60,
//	})
//	api.Use(limiter.Handler)
//
// Rejected requests get 429 with Retry-After and X-RateLimit-* headers.
//
// # Related Packages
//
//   - pkg/server: Applies the limiter to /v1 routes
//   - pkg/httputil: Error responses
package middleware
