package subscribe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/debounce"
	"github.com/dmitrymomot/widgetkit/pkg/formstate"
	"github.com/dmitrymomot/widgetkit/pkg/graphql"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/sanitizer"
)

const (
	FieldName  = "name"
	FieldEmail = "emailAddress"
	FieldState = "state"
)

// DefaultCloseAfter is how long the success message stays before the modal closes.
const DefaultCloseAfter = 1500 * time.Millisecond

// Subscriber subscribes visitors to event announcements. *backend.API implements it.
type Subscriber interface {
	SubscribeEvent(ctx context.Context, in backend.SubscribeInput) graphql.Result[backend.Subscription]
}

type Values struct {
	Name  string
	Email string
	State string
}

// Result of a successful submit.
type Result struct {
	Message    string
	CloseAfter time.Duration
}

// Modal is one event-subscription dialog. The host page opens it explicitly
// with Open; it closes on Close or by itself shortly after a successful
// subscription.
type Modal struct {
	api        Subscriber
	logger     *slog.Logger
	state      *formstate.Session
	afterFunc  debounce.AfterFunc
	closeAfter time.Duration

	mu         sync.Mutex
	table      messages.Table
	open       bool
	values     Values
	success    string
	submitting bool
	closer     debounce.Timer
}

type Option func(*Modal)

func WithMessages(t messages.Table) Option {
	return func(m *Modal) {
		if t != nil {
			m.table = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Modal) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCloseAfter overrides DefaultCloseAfter. Zero keeps the modal open.
func WithCloseAfter(d time.Duration) Option {
	return func(m *Modal) {
		if d >= 0 {
			m.closeAfter = d
		}
	}
}

// WithAfterFunc replaces the timer used for closing after success.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(m *Modal) {
		if fn != nil {
			m.afterFunc = fn
		}
	}
}

func NewModal(api Subscriber, opts ...Option) *Modal {
	m := &Modal{
		api:        api,
		logger:     logger.Discard(),
		table:      messages.Keys(),
		afterFunc:  debounce.StdAfterFunc,
		closeAfter: DefaultCloseAfter,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = formstate.New(m.table,
		formstate.DisplayName(FieldName),
		formstate.Email(FieldEmail),
	)
	m.values.State = States[0].Value
	return m
}

func (m *Modal) Localize(t messages.Table) {
	if t == nil {
		return
	}
	m.mu.Lock()
	m.table = t
	m.mu.Unlock()
	m.state.SetTable(t)
}

// Open shows the dialog.
func (m *Modal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
}

// Close hides the dialog and clears its messages. Typed values are kept.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Modal) closeLocked() {
	if m.closer != nil {
		m.closer.Stop()
		m.closer = nil
	}
	m.open = false
	m.success = ""
	m.state.Reset()
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Update replaces the typed values. Editing the email clears its message.
func (m *Modal) Update(v Values) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v.Email != m.values.Email {
		m.state.ClearMessage(FieldEmail)
	}
	v.State = LookupState(v.State).Value
	m.values = v
}

func (m *Modal) Values() Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values
}

func (m *Modal) Messages() map[string]string {
	return m.state.Messages()
}

// Success is the confirmation shown until the modal closes.
func (m *Modal) Success() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

// Submit validates the name and email and subscribes. Either field failing
// sends nothing and leaves its message on the modal.
func (m *Modal) Submit(ctx context.Context) (Result, error) {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return Result{}, ErrClosed
	}
	if m.submitting {
		m.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	}
	m.submitting = true
	in := backend.SubscribeInput{
		Name:         sanitizer.Name(m.values.Name),
		EmailAddress: sanitizer.Email(m.values.Email),
		State:        LookupState(m.values.State).Value,
	}
	table := m.table
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	log := m.logger.With(logger.Widget("subscribe"), logger.Operation("subscribeEvent"))

	if !m.state.ValidateAll(map[string]string{FieldName: in.Name, FieldEmail: in.EmailAddress}) {
		log.DebugContext(ctx, "subscribe form invalid")
		return Result{}, ErrInvalid
	}

	if _, err := m.api.SubscribeEvent(ctx, in).Unwrap(); err != nil {
		log.ErrorContext(ctx, "subscription failed",
			logger.Error(err),
			slog.String("kind", graphql.KindOf(err).String()),
			slog.String("error_code", backend.RejectionCode(err)),
			slog.String("state", in.State),
			slog.String("email", sanitizer.MaskEmail(in.EmailAddress)),
		)
		return Result{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	log.InfoContext(ctx, "subscribed to events", slog.String("state", in.State))

	res := Result{Message: table.T(messages.KeySubscribeSuccess), CloseAfter: m.closeAfter}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.success = res.Message
	m.state.Reset()
	if m.closeAfter > 0 {
		if m.closer != nil {
			m.closer.Stop()
		}
		m.closer = m.afterFunc(m.closeAfter, m.autoClose)
	}
	return res, nil
}

func (m *Modal) autoClose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.success == "" {
		return
	}
	m.closer = nil
	m.closeLocked()
}
