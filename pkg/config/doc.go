// Package config loads typed configuration from environment variables with
// github.com/caarlos0/env/v11, reading an optional .env file through
// github.com/joho/godotenv first.
//
// Load parses a struct once per type and caches it for the life of the
// process, so packages can ask for their settings independently. MustLoad
// panics instead of returning an error. Parse skips both the process
// environment and the cache and is meant for tests:
//
//	var cfg struct {
//		Endpoint string        `env:"GRAPHQL_ENDPOINT,required"`
//		Timeout  time.Duration `env:"GRAPHQL_TIMEOUT" envDefault:"10s"`
//	}
//	config.MustLoad(&cfg)
package config
