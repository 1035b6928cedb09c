// Package environment carries the deployment environment (development,
// staging or production) through configuration, request contexts and logs.
//
// Parse turns the APP_ENV setting into an Environment, Middleware attaches it
// to each request and LoggerExtractor exposes it to the logger package:
//
//	env, err := environment.Parse(cfg.Env)
//	r.Use(environment.Middleware(env))
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
//
// Widget handlers consult IsProduction to decide whether the bot check must
// be passed before a form is submitted.
package environment
