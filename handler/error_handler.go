package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/requestid"
	"github.com/dmitrymomot/widgetkit/pkg/validator"
)

// ErrorParams is what an error fragment is rendered from.
type ErrorParams struct {
	StatusCode int
	Message    string
	RequestID  string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Fragment renders the error message. Without it errors are written as plain text.
	Fragment func(ErrorParams) templ.Component
	// Target is the selector patched for Datastar requests. Defaults to "#widget-error".
	Target string
	// Messages translates error keys. Keys are shown as-is when nil.
	Messages *messages.Catalog
}

// classifyError maps err to a status code and message key. Anything that is
// not an HTTPError or a validation failure is reported as unexpectedError so
// transport details never reach the widget.
func classifyError(err error) (int, string) {
	if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
		return http.StatusUnprocessableEntity, ve[0].TranslationKey
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Key
	}
	return http.StatusInternalServerError, messages.KeyUnexpectedError
}

// NewErrorHandler logs the error with request details and renders the
// translated message as a fragment. Client errors log at warn level, server
// errors at error level.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.Target == "" {
		cfg.Target = "#widget-error"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, key := classifyError(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Component("handler"),
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		msg := key
		if cfg.Messages != nil {
			msg = cfg.Messages.Tc(r.Context(), key)
		}

		if cfg.Fragment == nil {
			http.Error(ctx.ResponseWriter(), msg, status)
			return
		}

		params := ErrorParams{StatusCode: status, Message: msg, RequestID: requestid.FromContext(r.Context())}
		resp := TemplWithStatus(status, cfg.Fragment(params), WithTarget(cfg.Target), WithPatchMode(PatchInner))
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error fragment", logger.Error(renderErr))
		}
	}
}
