// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags. A .env file in
// the working directory is read once, on first use, through godotenv.
//
//	import "github.com/dmitrymomot/fanout/core/config"
//
//	type Config struct {
//		Dispatch dispatch.Config
//		Toggle   toggle.Config
//	}
//
//	func main() {
//		var cfg Config
//		config.MustLoad(&cfg)
//
//		engine, err := dispatch.NewFromConfig[string](cfg.Dispatch)
//		// ...
//	}
//
// # Caching
//
// Each type is parsed once per process. Later calls for the same type copy
// the cached value, and different types are cached independently:
//
//	var a, b dispatch.Config
//	config.Load(&a) // parses the environment
//	config.Load(&b) // copies the cached value, a == b
package config
