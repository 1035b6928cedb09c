package join_test

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/modules/join"
	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/debounce"
	"github.com/dmitrymomot/widgetkit/pkg/location"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
)

type searcherMock struct {
	mock.Mock
}

func (m *searcherMock) SearchLocations(ctx context.Context, keyword string) ([]backend.Location, error) {
	args := m.Called(ctx, keyword)
	locs, _ := args.Get(0).([]backend.Location)
	return locs, args.Error(1)
}

// manualClock holds debounce timers until fire is called.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu   sync.Mutex
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.done
	t.done = true
	return was
}

func (c *manualClock) AfterFunc(_ time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fire() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range timers {
		if t.Stop() {
			t.fn()
		}
	}
}

var sydney = backend.Location{
	ID:          "2000",
	Words:       "Sydney",
	CountryName: "Australia",
	RegionName:  "NSW",
	PlaceName:   "Sydney",
	Longitude:   151.2,
	Latitude:    -33.8,
}

func english(t *testing.T) messages.Table {
	t.Helper()
	c, err := messages.Default(context.Background())
	require.NoError(t, err)
	return c.For("en")
}

func newForm(t *testing.T, s location.Searcher) (*join.Form, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	f := join.NewForm(location.New(s, location.WithAfterFunc(clock.AfterFunc)), join.WithMessages(english(t)))
	t.Cleanup(f.Close)
	return f, clock
}

func TestLookupGender(t *testing.T) {
	t.Parallel()

	g, ok := join.LookupGender("female")
	require.True(t, ok)
	assert.Equal(t, "Woman", g.String)

	_, ok = join.LookupGender("other")
	assert.False(t, ok)
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	female, _ := join.LookupGender("female")
	male, _ := join.LookupGender("male")

	raw, err := join.JoinURL("https://dating.example.com/start?ref=widget", female, male, sydney)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "dating.example.com", u.Host)
	assert.Equal(t, "widget", q.Get("ref"))
	assert.Equal(t, "true", q.Get("join"))
	assert.JSONEq(t, `{"type":"female","string":"Woman"}`, q.Get("gender"))
	assert.JSONEq(t, `{"type":"male","string":"Man"}`, q.Get("seekingGender"))

	var loc backend.Location
	require.NoError(t, json.Unmarshal([]byte(q.Get("location")), &loc))
	assert.Equal(t, sydney, loc)
	assert.Contains(t, q.Get("location"), `"id":"2000"`)

	_, err = join.JoinURL("not a url", female, male, sydney)
	assert.ErrorIs(t, err, join.ErrInvalidProductURL)
}

func TestFormSubmitRequiresEverything(t *testing.T) {
	t.Parallel()

	f, _ := newForm(t, &searcherMock{})

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, join.ErrInvalid)
	assert.Equal(t, "Please select gender(s).", f.Messages()[join.FieldGender])
	assert.Equal(t, "Your location is required.", f.Messages()[join.FieldLocation])

	require.NoError(t, f.SetGender("male"))
	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, join.ErrInvalid)
	assert.Contains(t, f.Messages(), join.FieldGender, "one gender is not enough")

	require.NoError(t, f.SetLookingFor("female"))
	assert.NotContains(t, f.Messages(), join.FieldGender)
}

func TestFormUnknownGender(t *testing.T) {
	t.Parallel()

	f, _ := newForm(t, &searcherMock{})
	assert.ErrorIs(t, f.SetGender("robot"), join.ErrUnknownGender)
	require.NoError(t, f.SetGender(""))

	_, ok := f.Gender()
	assert.False(t, ok)
}

func TestFormSubmitBuildsJoinURL(t *testing.T) {
	t.Parallel()

	s := &searcherMock{}
	s.On("SearchLocations", mock.Anything, "Syd").Return([]backend.Location{sydney}, nil).Once()

	f, clock := newForm(t, s)
	require.NoError(t, f.SetGender("male"))
	require.NoError(t, f.SetLookingFor("female"))

	f.TypeLocation("Syd")
	clock.fire()

	st := f.Lookup().State()
	require.Len(t, st.Candidates, 1)
	assert.Equal(t, "Sydney, NSW", st.Candidates[0].Label())

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, join.ErrInvalid, "typed text is not a selection")

	loc, err := f.SelectLocation("2000")
	require.NoError(t, err)
	assert.Equal(t, sydney, loc)
	assert.NotContains(t, f.Messages(), join.FieldLocation)
	assert.Equal(t, "Sydney", f.Lookup().State().Text)

	raw, err := f.Submit(context.Background())
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "dating.rsvp.com.au", u.Host)
	assert.JSONEq(t, `{"type":"male","string":"Man"}`, u.Query().Get("gender"))
	s.AssertExpectations(t)
}

func TestFormSelectUnknownCandidate(t *testing.T) {
	t.Parallel()

	f, _ := newForm(t, &searcherMock{})
	_, err := f.SelectLocation("42")
	assert.ErrorIs(t, err, location.ErrUnknownCandidate)
}

func TestFormReset(t *testing.T) {
	t.Parallel()

	f, _ := newForm(t, &searcherMock{})
	require.NoError(t, f.SetGender("female"))
	f.TypeLocation("Mel")
	_, _ = f.Submit(context.Background())

	f.Reset()
	_, ok := f.Gender()
	assert.False(t, ok)
	assert.Empty(t, f.Messages())
	assert.Empty(t, f.Lookup().State().Text)
}
