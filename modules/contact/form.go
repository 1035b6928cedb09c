package contact

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/botcheck"
	"github.com/dmitrymomot/widgetkit/pkg/formstate"
	"github.com/dmitrymomot/widgetkit/pkg/graphql"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/sanitizer"
)

// Field names, shared by the views and the form messages.
const (
	FieldName     = "name"
	FieldSubject  = "subject"
	FieldBody     = "body"
	FieldEmail    = "emailAddress"
	FieldBotCheck = "botCheck"
)

// Ticketer creates support tickets. *backend.API implements it.
type Ticketer interface {
	CreateNonLoginTicket(ctx context.Context, in backend.TicketInput) graphql.Result[backend.Ticket]
}

// Values is what the visitor typed.
type Values struct {
	Name    string
	Subject string
	Body    string
	Email   string
	Token   string
}

// Confirmation is the success message split around the ticket id.
type Confirmation struct {
	TicketID backend.ID
	Before   string
	After    string
}

func (c Confirmation) String() string {
	return c.Before + c.TicketID.String() + c.After
}

// Form is one contact form instance. It keeps the field messages between
// requests and lets a single submission run at a time.
type Form struct {
	api      Ticketer
	verifier botcheck.Verifier
	logger   *slog.Logger
	state    *formstate.Session

	mu         sync.Mutex
	table      messages.Table
	initial    Subject
	values     Values
	submitting bool
}

type Option func(*Form)

// WithVerifier checks the bot-check token on submit. Defaults to botcheck.Presence.
func WithVerifier(v botcheck.Verifier) Option {
	return func(f *Form) {
		if v != nil {
			f.verifier = v
		}
	}
}

func WithMessages(t messages.Table) Option {
	return func(f *Form) {
		if t != nil {
			f.table = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithSubject preselects a subject by value; unknown values select the first one.
func WithSubject(value string) Option {
	return func(f *Form) {
		f.initial = LookupSubject(value)
	}
}

func NewForm(api Ticketer, opts ...Option) *Form {
	f := &Form{
		api:      api,
		verifier: botcheck.Presence(),
		logger:   logger.Discard(),
		table:    messages.Keys(),
		initial:  Subjects[0],
	}
	for _, opt := range opts {
		opt(f)
	}
	f.state = formstate.New(f.table,
		formstate.Required(FieldName, messages.KeyNameRequired),
		formstate.Required(FieldBody, messages.KeyMessageRequired),
		formstate.Email(FieldEmail),
	)
	f.values.Subject = f.initial.Value
	return f
}

// Localize switches the language of messages set from now on.
func (f *Form) Localize(t messages.Table) {
	if t == nil {
		return
	}
	f.mu.Lock()
	f.table = t
	f.mu.Unlock()
	f.state.SetTable(t)
}

// Update replaces the typed values. An empty subject keeps the current one,
// an unknown one selects the first subject.
func (f *Form) Update(v Values) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subject := f.values.Subject
	if v.Subject != "" {
		subject = LookupSubject(v.Subject).Value
	}
	v.Subject = subject
	f.values = v
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Subject is the currently selected subject.
func (f *Form) Subject() Subject {
	return LookupSubject(f.Values().Subject)
}

// ValidateField validates one field as the visitor leaves it.
func (f *Form) ValidateField(field, text string) bool {
	return f.state.Validate(field, text)
}

// CanSubmit reports whether the submit button is enabled: name, message and
// email are filled in and the bot check was answered. Validity is checked on
// submit.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting &&
		sanitizer.Trim(f.values.Name) != "" &&
		sanitizer.Trim(f.values.Body) != "" &&
		sanitizer.Trim(f.values.Email) != "" &&
		botcheck.Present(f.values.Token)
}

// Messages returns the current field messages keyed by field name.
func (f *Form) Messages() map[string]string {
	return f.state.Messages()
}

// Submit validates the form and creates a ticket. Validation and bot-check
// failures leave messages on the form and send nothing. After success every
// field except the subject is cleared; after a failure the values stay so the
// visitor can retry. The bot-check token is single use and cleared either way.
func (f *Form) Submit(ctx context.Context, remoteIP string) (Confirmation, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Confirmation{}, ErrSubmitInProgress
	}
	f.submitting = true
	in := backend.TicketInput{
		Name:         sanitizer.Name(f.values.Name),
		Subject:      LookupSubject(f.values.Subject).Value,
		Body:         sanitizer.Body(f.values.Body),
		EmailAddress: sanitizer.Email(f.values.Email),
	}
	token := f.values.Token
	table := f.table
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.values.Token = ""
		f.mu.Unlock()
	}()

	log := f.logger.With(logger.Widget("contact"), logger.Operation("createNonLoginTicket"))

	valid := f.state.ValidateAll(map[string]string{
		FieldName:  in.Name,
		FieldBody:  in.Body,
		FieldEmail: in.EmailAddress,
	})
	if !botcheck.Present(token) {
		f.state.SetMessageKey(FieldBotCheck, messages.KeyBotCheckRequired)
		valid = false
	} else {
		f.state.ClearMessage(FieldBotCheck)
	}
	if !valid {
		log.DebugContext(ctx, "contact form invalid", slog.Any("fields", slices.Sorted(maps.Keys(f.state.Messages()))))
		return Confirmation{}, ErrInvalid
	}

	if err := f.verifier.Verify(ctx, token, remoteIP); err != nil {
		log.WarnContext(ctx, "bot check failed", logger.Error(err))
		f.state.SetMessageKey(FieldBotCheck, messages.KeyBotCheckRequired)
		return Confirmation{}, fmt.Errorf("%w: %w", ErrBotCheck, err)
	}

	ticket, err := f.api.CreateNonLoginTicket(ctx, in).Unwrap()
	if err != nil {
		log.ErrorContext(ctx, "ticket not created",
			logger.Error(err),
			slog.String("kind", graphql.KindOf(err).String()),
			slog.String("subject", in.Subject),
			slog.String("email", sanitizer.MaskEmail(in.EmailAddress)),
		)
		return Confirmation{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	log.InfoContext(ctx, "ticket created",
		slog.String("ticket_id", ticket.ID.String()),
		slog.String("subject", in.Subject),
	)

	f.mu.Lock()
	f.values = Values{Subject: in.Subject}
	f.mu.Unlock()
	f.state.Reset()

	c := Confirmation{TicketID: ticket.ID}
	c.Before, c.After = messages.Around(table, messages.KeyTicketCreated, "id")
	return c, nil
}

// Reset clears every field and returns the subject to the preselected one.
func (f *Form) Reset() {
	f.mu.Lock()
	f.values = Values{Subject: f.initial.Value}
	f.mu.Unlock()
	f.state.Reset()
}
