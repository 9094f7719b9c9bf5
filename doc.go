// Package fanout is a filter-gated publish/notify toolkit: messages go to
// every subscriber whose predicate accepts them, on a bounded worker pool
// with caller-runs backpressure and a graceful drain on shutdown.
//
// # Getting Documentation
//
//	go doc github.com/dmitrymomot/fanout/core/dispatch
//	go doc -all github.com/dmitrymomot/fanout/core/predicate
//
// # Core Packages
//
// github.com/dmitrymomot/fanout/core/predicate
//
// Composable boolean filters. Chain builds persistent left-associative
// and/or expressions with short-circuit evaluation.
//
// github.com/dmitrymomot/fanout/core/dispatch
//
// Subscriber registry and the dispatch engine: bounded pool, caller-runs
// when saturated, Active/Draining/Terminated lifecycle, failure isolation
// through DeliveryError and an error handler, subscriber decorators.
//
// github.com/dmitrymomot/fanout/core/toggle
//
// Remote on/off switch polled from a Source. Gate turns a toggle into a
// predicate so subscribers can be switched off without unregistering.
//
// github.com/dmitrymomot/fanout/core/logger
//
// slog construction and attribute helpers shared by every package.
//
// github.com/dmitrymomot/fanout/core/config
//
// Generic, cached environment loading with .env support.
//
// github.com/dmitrymomot/fanout/core/health
//
// Liveness and readiness HTTP probes over Healthcheck functions.
//
// # Utilities
//
// github.com/dmitrymomot/fanout/pkg/gather
//
// Concurrent batch of named actions with per-call timeout and a JSON handler.
//
// # Integrations
//
// github.com/dmitrymomot/fanout/integration/database/redis
//
// Redis client connection with retries and a healthcheck.
//
// github.com/dmitrymomot/fanout/integration/toggle/redis
//
// Toggle source backed by a Redis key.
//
// github.com/dmitrymomot/fanout/integration/toggle/s3
//
// Toggle source backed by an S3 object.
//
// github.com/dmitrymomot/fanout/integration/subscriber/redis
//
// Subscriber that publishes JSON messages to a Redis channel.
//
// github.com/dmitrymomot/fanout/integration/subscriber/websocket
//
// Subscriber hub that pushes JSON messages to connected WebSocket peers.
package fanout
