// Package httpserver runs the widget HTTP server with graceful shutdown.
//
// Run binds the listener, serves until the context is cancelled or SIGINT or
// SIGTERM arrives, then drains in-flight requests within the shutdown timeout
// and runs the registered stop hooks. Configuration comes from Config, which
// is loaded with pkg/config:
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router)
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
