package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/pkg/binder"
	"github.com/dmitrymomot/widgetkit/pkg/botcheck"
	"github.com/dmitrymomot/widgetkit/pkg/clientip"
	"github.com/dmitrymomot/widgetkit/pkg/environment"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/ratelimiter"
	"github.com/dmitrymomot/widgetkit/pkg/session"
)

// Config of the contact widget service.
type Config struct {
	// Action is the path the form posts to, as mounted by the host router.
	Action  string
	SiteKey string

	// Environment gates the placeholder bot-check token rendered when no
	// site key is set; only Development gets one.
	Environment environment.Environment
}

// Service serves the contact widget. Each visitor gets a Form instance kept
// in a session store; the session id travels as a hidden field.
type Service struct {
	cfg          Config
	api          Ticketer
	verifier     botcheck.Verifier
	catalog      *messages.Catalog
	forms        *session.Store[*Form]
	sessionCfg   session.Config
	views        *Views
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	limiter      ratelimiter.Limiter
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithViews(v *Views) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.views = v
		}
	}
}

func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func WithBotCheck(v botcheck.Verifier) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.verifier = v
		}
	}
}

// WithSessionConfig tunes the form instance store.
func WithSessionConfig(cfg session.Config) ServiceOption {
	return func(s *Service) {
		s.sessionCfg = cfg
	}
}

// WithSubmitLimiter throttles submissions per client IP.
func WithSubmitLimiter(l ratelimiter.Limiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

func NewService(cfg Config, api Ticketer, catalog *messages.Catalog, opts ...ServiceOption) *Service {
	if cfg.Action == "" {
		cfg.Action = "/contact"
	}
	s := &Service{
		cfg:          cfg,
		api:          api,
		verifier:     botcheck.Presence(),
		catalog:      catalog,
		views:        DefaultViews(),
		logger:       logger.Discard(),
		errorHandler: handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{Messages: catalog, Target: "#" + ErrorSlotID}),
		sessionCfg:   session.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.forms = session.NewFromConfig(s.sessionCfg, func(string) *Form {
		return NewForm(s.api, WithVerifier(s.verifier), WithLogger(s.logger))
	}, session.WithLogger[*Form](s.logger))
	return s
}

// Close releases every form instance.
func (s *Service) Close() error {
	return s.forms.Close()
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.Middleware(logger.Widget("contact")))

	r.Get("/", handler.Wrap(s.show,
		handler.WithBinders[handler.Context, ShowRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, ShowRequest](s.errorHandler),
	))
	r.Post("/", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(), binder.Signals()),
		handler.WithDecorators(s.submitDecorators()...),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))
	r.Post("/input", handler.Wrap(s.input,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))

	return r
}

func (s *Service) submitDecorators() []handler.Decorator[handler.Context, SubmitRequest] {
	if s.limiter == nil {
		return nil
	}
	return []handler.Decorator[handler.Context, SubmitRequest]{
		ratelimiter.Decorator[handler.Context, SubmitRequest](s.limiter, ratelimiter.ClientIP, s.logger),
	}
}

// ShowRequest carries the subject pre-fill from the embedding page URL.
type ShowRequest struct {
	Subject string `query:"subject"`
}

// SubmitRequest is posted as a form or as Datastar signals.
type SubmitRequest struct {
	SessionID string `form:"sessionId" json:"sessionId"`
	Name      string `form:"name" json:"name"`
	Subject   string `form:"subject" json:"subject"`
	Body      string `form:"body" json:"body"`
	Email     string `form:"emailAddress" json:"emailAddress"`
	Token     string `form:"g-recaptcha-response" json:"botCheckToken"`
}

func (req SubmitRequest) values() Values {
	return Values{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
		Email:   req.Email,
		Token:   req.Token,
	}
}

func (s *Service) table(ctx handler.Context) messages.Table {
	if s.catalog == nil {
		return messages.Keys()
	}
	return s.catalog.For(messages.GetLocale(ctx))
}

func (s *Service) formParams(ctx handler.Context, id string, f *Form) FormParams {
	table := s.table(ctx)
	values := f.Values()
	values.Token = ""

	subjects := make([]SubjectOption, len(Subjects))
	for i, sub := range Subjects {
		subjects[i] = SubjectOption{Value: sub.Value, Label: table.T(sub.LabelKey), Selected: sub.Value == values.Subject}
	}

	return FormParams{
		SessionID: id,
		Action:    s.cfg.Action,
		Subjects:  subjects,
		Values:    values,
		Messages:  f.Messages(),
		CanSubmit: f.CanSubmit(),
		SiteKey:   s.cfg.SiteKey,
		DevToken:  s.cfg.SiteKey == "" && s.cfg.Environment.IsDevelopment(),
	}
}

func (s *Service) show(ctx handler.Context, req ShowRequest) handler.Response {
	id, f, err := s.forms.Create()
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	f.Localize(s.table(ctx))
	f.Update(Values{Subject: LookupSubject(req.Subject).Value})
	return handler.TemplMulti(
		handler.Patch(s.views.Form(s.formParams(ctx, id, f))),
		handler.Patch(s.views.Result(ResultParams{})),
	)
}

// input tracks typing so the submit button follows the required fields.
func (s *Service) input(ctx handler.Context, req SubmitRequest) handler.Response {
	id, f, err := s.forms.Ensure(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	f.Update(req.values())
	return handler.Signals(map[string]any{"canSubmit": f.CanSubmit(), "sessionId": id})
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	id, f, err := s.forms.Ensure(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	table := s.table(ctx)
	f.Localize(table)
	f.Update(req.values())

	conf, err := f.Submit(ctx, clientip.GetIPFromContext(ctx))
	switch {
	case errors.Is(err, ErrSubmitInProgress):
		return handler.Error(handler.ErrConflict.Wrap(err))

	case errors.Is(err, ErrInvalid), errors.Is(err, ErrBotCheck):
		return handler.TemplSignals(http.StatusUnprocessableEntity,
			map[string]any{"canSubmit": f.CanSubmit()},
			handler.Patch(s.views.Form(s.formParams(ctx, id, f))),
		)

	case err != nil:
		return handler.TemplSignals(http.StatusBadGateway,
			map[string]any{"canSubmit": f.CanSubmit()},
			handler.Patch(s.views.Form(s.formParams(ctx, id, f))),
			handler.Patch(s.views.Result(ResultParams{Message: table.T(messages.KeyTicketFailed)})),
		)
	}

	return handler.TemplSignals(http.StatusOK,
		map[string]any{"canSubmit": false},
		handler.Patch(s.views.Form(s.formParams(ctx, id, f))),
		handler.Patch(s.views.Result(ResultParams{Success: true, Confirmation: conf})),
	)
}
