package join

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/formstate"
	"github.com/dmitrymomot/widgetkit/pkg/location"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
)

const (
	FieldGender     = "gender"
	FieldLookingFor = "lookingFor"
	FieldLocation   = "location"
)

// DefaultProductURL is where a completed join form sends the visitor.
const DefaultProductURL = "https://dating.rsvp.com.au"

// Form is one join widget: two gender pickers and a location field backed by
// a debounced lookup. Submitting it yields the product join URL.
type Form struct {
	lookup     *location.Lookup
	logger     *slog.Logger
	productURL string
	state      *formstate.Session

	mu         sync.Mutex
	gender     *GenderItem
	lookingFor *GenderItem
}

type Option func(*Form)

func WithMessages(t messages.Table) Option {
	return func(f *Form) {
		if t != nil {
			f.state.SetTable(t)
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

// WithProductURL overrides DefaultProductURL.
func WithProductURL(u string) Option {
	return func(f *Form) {
		if u != "" {
			f.productURL = u
		}
	}
}

// NewForm wraps lookup. The form owns it: Close closes the lookup too.
func NewForm(lookup *location.Lookup, opts ...Option) *Form {
	f := &Form{
		lookup:     lookup,
		logger:     logger.Discard(),
		productURL: DefaultProductURL,
		state:      formstate.New(messages.Keys()),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Localize(t messages.Table) {
	if t != nil {
		f.state.SetTable(t)
	}
}

// Lookup exposes the location lookup, e.g. to stream its state.
func (f *Form) Lookup() *location.Lookup {
	return f.lookup
}

// SetGender picks "I am a". An empty value leaves the choice unchanged.
func (f *Form) SetGender(v string) error {
	return f.pick(&f.gender, v)
}

// SetLookingFor picks "Looking for a". An empty value leaves the choice unchanged.
func (f *Form) SetLookingFor(v string) error {
	return f.pick(&f.lookingFor, v)
}

func (f *Form) pick(dst **GenderItem, v string) error {
	if v == "" {
		return nil
	}
	g, ok := LookupGender(v)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGender, v)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	*dst = &g
	if f.gender != nil && f.lookingFor != nil {
		f.state.ClearMessage(FieldGender)
	}
	return nil
}

func (f *Form) Gender() (GenderItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gender == nil {
		return GenderItem{}, false
	}
	return *f.gender, true
}

func (f *Form) LookingFor() (GenderItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookingFor == nil {
		return GenderItem{}, false
	}
	return *f.lookingFor, true
}

// TypeLocation feeds a keystroke to the lookup.
func (f *Form) TypeLocation(text string) {
	f.lookup.Type(text)
}

// SelectLocation picks a visible candidate and clears the location message.
func (f *Form) SelectLocation(id backend.ID) (backend.Location, error) {
	loc, err := f.lookup.Select(id)
	if err != nil {
		return backend.Location{}, err
	}
	f.state.ClearMessage(FieldLocation)
	return loc, nil
}

func (f *Form) BlurLocation(text string) {
	f.lookup.Blur(text)
}

func (f *Form) Messages() map[string]string {
	return f.state.Messages()
}

// Submit checks that both genders and a location are chosen and returns the
// product join URL. Missing parts get their messages and ErrInvalid.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	gender, lookingFor := f.gender, f.lookingFor
	f.mu.Unlock()
	loc, hasLocation := f.lookup.Selected()

	ok := true
	if gender == nil || lookingFor == nil {
		f.state.SetMessageKey(FieldGender, messages.KeyGenderRequired)
		ok = false
	}
	if !hasLocation {
		f.state.SetMessageKey(FieldLocation, messages.KeyLocationRequired)
		ok = false
	}
	if !ok {
		f.logger.DebugContext(ctx, "join form incomplete", logger.Widget("join"))
		return "", ErrInvalid
	}

	u, err := JoinURL(f.productURL, *gender, *lookingFor, loc)
	if err != nil {
		f.logger.ErrorContext(ctx, "building join url failed", logger.Widget("join"), logger.Error(err))
		return "", err
	}

	f.logger.InfoContext(ctx, "join form completed",
		logger.Widget("join"),
		slog.String("gender", string(gender.Type)),
		slog.String("seeking_gender", string(lookingFor.Type)),
		slog.String("location_id", loc.ID.String()),
	)
	return u, nil
}

// Reset clears choices, messages and the location field.
func (f *Form) Reset() {
	f.mu.Lock()
	f.gender, f.lookingFor = nil, nil
	f.mu.Unlock()
	f.state.Reset()
	f.lookup.Reset()
}

// Close releases the lookup.
func (f *Form) Close() {
	f.lookup.Close()
}

// JoinURL adds the join parameters to base: gender, seekingGender and
// location as JSON, plus join=true. Existing query parameters are kept.
func JoinURL(base string, gender, lookingFor GenderItem, loc backend.Location) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidProductURL, base)
	}

	q := u.Query()
	for name, v := range map[string]any{"gender": gender, "seekingGender": lookingFor, "location": loc} {
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("join: encode %s: %w", name, err)
		}
		q.Set(name, string(data))
	}
	q.Set("join", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
