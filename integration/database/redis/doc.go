// Package redis opens go-redis clients for the Redis-backed toggle source
// and subscriber.
//
// Connect parses the URL, pings with retries and returns a ready client.
// Healthcheck adapts a client to a readiness check.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	src, err := redistoggle.New(client, "flags:notifications")
//	pub, err := redissub.New[Event](client, "events")
//
// Both redis:// and rediss:// (TLS) URLs are accepted. Errors can be
// matched with errors.Is against ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady and
// ErrHealthcheckFailed.
package redis
