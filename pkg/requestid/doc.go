// Package requestid assigns a correlation id to every widget request.
//
// Middleware accepts the X-Request-ID header from the embedding page when it
// is well formed and otherwise generates a UUID. The id is stored in the
// request context, echoed in the response and added to log records through
// LoggerExtractor. New is also used to mint widget session ids.
package requestid
