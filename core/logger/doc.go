// Package logger provides a small factory and attribute helpers on top of
// the standard log/slog package.
//
// Every component in this module accepts a *slog.Logger through a
// WithLogger option and falls back to Discard when none is given, so the
// logger built here is the single place where format, level and output are
// decided.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/fanout/core/logger"
//
//	// Development: text, debug level, source locations
//	log := logger.New(logger.WithDevelopment("notifier"))
//
//	// Production: JSON, info level
//	log := logger.New(logger.WithProduction("notifier"))
//
//	// Custom
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("region", "eu-west-1")),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog
// drops, so they can be used without nil checks:
//
//	log.Error("subscriber delivery failed",
//		logger.EngineID(engineID),
//		logger.SubscriberID(subID),
//		logger.Error(err),
//		logger.Panic(recovered, stack),
//	)
//
//	log.Debug("broadcast finished",
//		logger.Component("dispatch"),
//		logger.Count("delivered", n),
//		logger.Elapsed(start),
//	)
//
// # Testing
//
// Point the logger at a buffer to assert on output:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("ready", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
