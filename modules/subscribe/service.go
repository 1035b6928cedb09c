package subscribe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/pkg/binder"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/ratelimiter"
	"github.com/dmitrymomot/widgetkit/pkg/session"
)

type Config struct {
	Action string
}

// Service serves the subscription modal, one Modal per visitor session.
type Service struct {
	cfg          Config
	api          Subscriber
	catalog      *messages.Catalog
	modals       *session.Store[*Modal]
	sessionCfg   session.Config
	modalOpts    []Option
	views        *Views
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	limiter      ratelimiter.Limiter
}

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

// WithModalOptions are applied to every Modal the service creates.
func WithModalOptions(opts ...Option) ServiceOption {
	return func(s *Service) {
		s.modalOpts = append(s.modalOpts, opts...)
	}
}

func NewService(cfg Config, api Subscriber, catalog *messages.Catalog, opts ...ServiceOption) *Service {
	if cfg.Action == "" {
		cfg.Action = "/subscribe"
	}
	s := &Service{
		cfg:          cfg,
		api:          api,
		catalog:      catalog,
		sessionCfg:   session.DefaultConfig(),
		views:        DefaultViews(),
		logger:       logger.Discard(),
		errorHandler: handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{Messages: catalog, Target: "#" + ErrorSlotID}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.modals = session.NewFromConfig(s.sessionCfg, func(string) *Modal {
		return NewModal(s.api, append([]Option{WithLogger(s.logger)}, s.modalOpts...)...)
	}, session.WithLogger[*Modal](s.logger))
	return s
}

func (s *Service) Close() error {
	return s.modals.Close()
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.Middleware(logger.Widget("subscribe")))

	r.Get("/", handler.Wrap(s.show,
		handler.WithBinders[handler.Context, ShowRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, ShowRequest](s.errorHandler),
	))
	r.Post("/", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(), binder.Signals()),
		handler.WithDecorators(s.submitDecorators()...),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))
	r.Post("/open", handler.Wrap(s.open,
		handler.WithBinders[handler.Context, SessionRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, SessionRequest](s.errorHandler),
	))
	r.Post("/close", handler.Wrap(s.close,
		handler.WithBinders[handler.Context, SessionRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, SessionRequest](s.errorHandler),
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

// ShowRequest renders the modal. Open=true shows it right away.
type ShowRequest struct {
	Open bool `query:"open"`
}

type SessionRequest struct {
	SessionID string `form:"sessionId" json:"sessionId"`
}

type SubmitRequest struct {
	SessionID string `form:"sessionId" json:"sessionId"`
	Name      string `form:"name" json:"name"`
	Email     string `form:"emailAddress" json:"emailAddress"`
	State     string `form:"state" json:"state"`
}

func (s *Service) table(ctx handler.Context) messages.Table {
	if s.catalog == nil {
		return messages.Keys()
	}
	return s.catalog.For(messages.GetLocale(ctx))
}

func (s *Service) params(ctx handler.Context, id string, m *Modal) ModalParams {
	table := s.table(ctx)
	values := m.Values()

	states := make([]StateOption, len(States))
	for i, st := range States {
		states[i] = StateOption{Value: st.Value, Label: table.T(st.LabelKey), Selected: st.Value == values.State}
	}

	return ModalParams{
		SessionID:  id,
		Action:     s.cfg.Action,
		Open:       m.IsOpen(),
		Values:     values,
		States:     states,
		Messages:   m.Messages(),
		Success:    m.Success(),
		CloseAfter: m.closeAfter.Milliseconds(),
	}
}

func (s *Service) render(ctx handler.Context, id string, m *Modal) handler.Response {
	return handler.Templ(s.views.Modal(s.params(ctx, id, m)))
}

func (s *Service) show(ctx handler.Context, req ShowRequest) handler.Response {
	id, m, err := s.modals.Create()
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	m.Localize(s.table(ctx))
	if req.Open {
		m.Open()
	}
	return s.render(ctx, id, m)
}

func (s *Service) open(ctx handler.Context, req SessionRequest) handler.Response {
	id, m, err := s.modals.Ensure(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	m.Localize(s.table(ctx))
	m.Open()
	return s.render(ctx, id, m)
}

func (s *Service) close(ctx handler.Context, req SessionRequest) handler.Response {
	id, m, err := s.modals.Ensure(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	m.Close()
	return s.render(ctx, id, m)
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	id, m, err := s.modals.Ensure(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	table := s.table(ctx)
	m.Localize(table)
	// A submit from a page whose session expired reopens the modal.
	m.Open()
	m.Update(Values{Name: req.Name, Email: req.Email, State: req.State})

	_, err = m.Submit(ctx)
	switch {
	case errors.Is(err, ErrSubmitInProgress):
		return handler.Error(handler.ErrConflict.Wrap(err))
	case errors.Is(err, ErrInvalid):
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, s.views.Modal(s.params(ctx, id, m)))
	case err != nil:
		p := s.params(ctx, id, m)
		p.Error = table.T(messages.KeySubscribeFailed)
		return handler.TemplWithStatus(http.StatusBadGateway, s.views.Modal(p))
	}
	return s.render(ctx, id, m)
}
