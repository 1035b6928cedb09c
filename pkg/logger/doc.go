// Package logger builds *slog.Logger values for the widget server and offers
// attribute helpers so records use the same keys everywhere.
//
// New takes functional options. WithEnvironment picks text at debug level for
// development and JSON at info level elsewhere; WithLevelName and WithFormat
// override that from configuration. Extractors registered with
// WithContextExtractors add request scoped values such as the request id:
//
//	log := logger.New(
//	    logger.WithEnvironment(env, "widgets"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "ticket created", logger.Widget("contact"), logger.Operation("createNonLoginTicket"))
//
// Widget routers tag their request contexts with Middleware (or
// ContextWithAttrs), so every record logged with that context names the
// widget. Keys already on the record or bound with With win over context
// values and are never written twice.
//
// Error and Errors return an empty attribute for nil errors, which slog
// drops, so results can be logged without a nil check.
//
// Library packages default to Discard when no logger is injected.
package logger
