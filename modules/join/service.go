package join

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/binder"
	"github.com/dmitrymomot/widgetkit/pkg/location"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/ratelimiter"
	"github.com/dmitrymomot/widgetkit/pkg/session"
)

type Config struct {
	// Action is the path the widget is mounted at.
	Action     string
	ProductURL string
}

// Service serves the join widget. Each visitor session owns a Form and its
// location lookup; the lookup is closed when the session is released.
type Service struct {
	cfg          Config
	searcher     location.Searcher
	catalog      *messages.Catalog
	forms        *session.Store[*Form]
	sessionCfg   session.Config
	lookupOpts   []location.Option
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

// WithLookupOptions are applied to every location lookup, e.g. a shared
// result cache or the debounce delay.
func WithLookupOptions(opts ...location.Option) ServiceOption {
	return func(s *Service) {
		s.lookupOpts = append(s.lookupOpts, opts...)
	}
}

func NewService(cfg Config, searcher location.Searcher, catalog *messages.Catalog, opts ...ServiceOption) *Service {
	if cfg.Action == "" {
		cfg.Action = "/join"
	}
	if cfg.ProductURL == "" {
		cfg.ProductURL = DefaultProductURL
	}
	s := &Service{
		cfg:          cfg,
		searcher:     searcher,
		catalog:      catalog,
		sessionCfg:   session.DefaultConfig(),
		views:        DefaultViews(),
		logger:       logger.Discard(),
		errorHandler: handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{Messages: catalog, Target: "#" + ErrorSlotID}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.forms = session.NewFromConfig(s.sessionCfg, s.newForm,
		session.WithLogger[*Form](s.logger),
		session.WithOnRelease(func(_ string, f *Form) { f.Close() }),
	)
	return s
}

func (s *Service) newForm(id string) *Form {
	lookup := location.New(s.searcher,
		append([]location.Option{location.WithLogger(s.logger.With(logger.Session(id)))}, s.lookupOpts...)...)
	return NewForm(lookup, WithLogger(s.logger), WithProductURL(s.cfg.ProductURL))
}

// Close releases every session and its lookup.
func (s *Service) Close() error {
	return s.forms.Close()
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(logger.Middleware(logger.Widget("join")))

	r.Get("/", handler.Wrap(s.show,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(), binder.Signals()),
		handler.WithDecorators(s.submitDecorators()...),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))
	r.Post("/gender", handler.Wrap(s.gender,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))
	r.Post("/location", handler.Wrap(s.typeLocation,
		handler.WithBinders[handler.Context, LocationRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, LocationRequest](s.errorHandler),
	))
	r.Post("/location/select", handler.Wrap(s.selectLocation,
		handler.WithBinders[handler.Context, LocationRequest](binder.Form(), binder.Query(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, LocationRequest](s.errorHandler),
	))
	r.Post("/location/blur", handler.Wrap(s.blurLocation,
		handler.WithBinders[handler.Context, LocationRequest](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, LocationRequest](s.errorHandler),
	))
	r.Get("/stream", handler.Wrap(s.stream,
		handler.WithBinders[handler.Context, StreamRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, StreamRequest](s.errorHandler),
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

type SubmitRequest struct {
	SessionID  string `form:"sessionId" json:"sessionId"`
	Gender     string `form:"gender" json:"gender"`
	LookingFor string `form:"lookingFor" json:"lookingFor"`
}

type LocationRequest struct {
	SessionID  string `form:"sessionId" json:"sessionId"`
	Text       string `form:"location" json:"location"`
	LocationID string `form:"locationId" query:"locationId" json:"locationId"`
}

type StreamRequest struct {
	SessionID string `query:"sessionId"`
}

func (s *Service) table(ctx handler.Context) messages.Table {
	if s.catalog == nil {
		return messages.Keys()
	}
	return s.catalog.For(messages.GetLocale(ctx))
}

func (s *Service) genderParams(table messages.Table, f *Form) GenderParams {
	options := func(picked GenderItem, ok bool) []GenderOption {
		out := make([]GenderOption, len(Genders))
		for i, g := range Genders {
			out[i] = GenderOption{Value: string(g.Type), Label: g.Label(table), Selected: ok && picked.Type == g.Type}
		}
		return out
	}
	return GenderParams{
		Action:     s.cfg.Action,
		Gender:     options(f.Gender()),
		LookingFor: options(f.LookingFor()),
		Message:    f.Messages()[FieldGender],
	}
}

func (s *Service) locationParams(table messages.Table, id string, f *Form, st location.State) LocationParams {
	candidates := make([]Candidate, len(st.Candidates))
	for i, c := range st.Candidates {
		candidates[i] = Candidate{ID: c.ID.String(), Label: c.Label()}
	}
	return LocationParams{
		SessionID:  id,
		Action:     s.cfg.Action,
		Text:       st.Text,
		Valid:      st.Valid,
		Message:    f.Messages()[FieldLocation],
		ShowList:   st.Visible && st.Keyword != "" && st.Selected == nil,
		Candidates: candidates,
		NoResult:   table.T(messages.KeyNoLocationResult),
	}
}

func (s *Service) widget(ctx handler.Context, id string, f *Form) WidgetParams {
	table := s.table(ctx)
	return WidgetParams{
		SessionID: id,
		Action:    s.cfg.Action,
		Genders:   s.genderParams(table, f),
		Location:  s.locationParams(table, id, f, f.Lookup().State()),
	}
}

func (s *Service) show(ctx handler.Context, _ struct{}) handler.Response {
	id, f, err := s.forms.Create()
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	f.Localize(s.table(ctx))
	return handler.Templ(s.views.Widget(s.widget(ctx, id, f)))
}

// ensure resolves the visitor's form. A replaced session id means the page
// holds stale state, so the caller re-renders the whole widget.
func (s *Service) ensure(ctx handler.Context, sessionID string) (string, *Form, bool, error) {
	id, f, err := s.forms.Ensure(sessionID)
	if err != nil {
		return "", nil, false, err
	}
	f.Localize(s.table(ctx))
	return id, f, id != sessionID, nil
}

func (s *Service) gender(ctx handler.Context, req SubmitRequest) handler.Response {
	id, f, fresh, err := s.ensure(ctx, req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	if err := errors.Join(f.SetGender(req.Gender), f.SetLookingFor(req.LookingFor)); err != nil {
		return handler.Error(handler.ErrBadRequest.Wrap(err))
	}
	if fresh {
		return handler.Templ(s.views.Widget(s.widget(ctx, id, f)))
	}
	return handler.Templ(s.views.Genders(s.genderParams(s.table(ctx), f)))
}

func (s *Service) typeLocation(ctx handler.Context, req LocationRequest) handler.Response {
	id, f, fresh, err := s.ensure(ctx, req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	f.TypeLocation(req.Text)
	if fresh {
		return handler.Templ(s.views.Widget(s.widget(ctx, id, f)))
	}
	// Candidates arrive on the stream once the debounced search completes.
	return handler.Empty()
}

func (s *Service) selectLocation(ctx handler.Context, req LocationRequest) handler.Response {
	id, f, fresh, err := s.ensure(ctx, req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	if fresh {
		return handler.Templ(s.views.Widget(s.widget(ctx, id, f)))
	}

	if _, err := f.SelectLocation(backend.ID(req.LocationID)); err != nil {
		s.logger.DebugContext(ctx, "location selection ignored",
			logger.Widget("join"), logger.Session(id), logger.Error(err))
	}
	return handler.Templ(s.views.Location(s.locationParams(s.table(ctx), id, f, f.Lookup().State())))
}

func (s *Service) blurLocation(ctx handler.Context, req LocationRequest) handler.Response {
	id, f, fresh, err := s.ensure(ctx, req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	if fresh {
		return handler.Templ(s.views.Widget(s.widget(ctx, id, f)))
	}
	f.BlurLocation(req.Text)
	return handler.Templ(s.views.Location(s.locationParams(s.table(ctx), id, f, f.Lookup().State())))
}

// stream pushes the candidate list every time the lookup state changes.
func (s *Service) stream(ctx handler.Context, req StreamRequest) handler.Response {
	f, err := s.forms.Get(req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrNotFound.Wrap(err))
	}
	table := s.table(ctx)

	return handler.SSE(func(stream handler.StreamContext) error {
		updates, cancel := f.Lookup().Subscribe()
		defer cancel()

		for {
			select {
			case <-stream.Done():
				return nil
			case st, ok := <-updates:
				if !ok {
					return nil
				}
				p := s.locationParams(table, req.SessionID, f, st)
				if err := stream.SendComponent(s.views.Candidates(p)); err != nil {
					return err
				}
			}
		}
	})
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	id, f, _, err := s.ensure(ctx, req.SessionID)
	if err != nil {
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	if err := errors.Join(f.SetGender(req.Gender), f.SetLookingFor(req.LookingFor)); err != nil {
		return handler.Error(handler.ErrBadRequest.Wrap(err))
	}

	target, err := f.Submit(ctx)
	switch {
	case errors.Is(err, ErrInvalid):
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, s.views.Widget(s.widget(ctx, id, f)))
	case err != nil:
		return handler.Error(handler.ErrInternalServerError.Wrap(err))
	}
	return handler.Redirect(target)
}
