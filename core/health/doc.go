// Package health provides HTTP probes for processes that host dispatch
// engines and their integrations.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: every check passes
//   - NoContent: 204 for high-frequency pings
//
// Usage:
//
//	mux.Handle("GET /health/live", health.Liveness())
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		engine.Healthcheck,
//		redis.Healthcheck(client),
//	))
//	mux.Handle("GET /ping", health.NoContent())
//
// Checks follow the func(context.Context) error signature.
package health
