package join_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/modules/join"
	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/location"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
)

var sessionIDRe = regexp.MustCompile(`name="sessionId" value="([^"]+)"`)

type widgetClient struct {
	t         *testing.T
	h         http.Handler
	sessionID string
}

func newService(t *testing.T, s location.Searcher) (*join.Service, *manualClock, *widgetClient) {
	t.Helper()
	catalog, err := messages.Default(context.Background())
	require.NoError(t, err)

	clock := &manualClock{}
	svc := join.NewService(join.Config{}, s, catalog,
		join.WithLookupOptions(location.WithAfterFunc(clock.AfterFunc)))
	t.Cleanup(func() { _ = svc.Close() })

	c := &widgetClient{t: t, h: svc.Handle()}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	m := sessionIDRe.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2)
	c.sessionID = m[1]
	return svc, clock, c
}

func (c *widgetClient) post(target string, values url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	if values == nil {
		values = url.Values{}
	}
	values.Set("sessionId", c.sessionID)
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, r)
	return rec
}

func TestServiceShow(t *testing.T) {
	t.Parallel()

	catalog, err := messages.Default(context.Background())
	require.NoError(t, err)
	svc := join.NewService(join.Config{}, &searcherMock{}, catalog)
	t.Cleanup(func() { _ = svc.Close() })

	rec := httptest.NewRecorder()
	svc.Handle().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `<div id="join-widget">`)
	assert.Contains(t, body, `name="gender" value="female"`)
	assert.Contains(t, body, `name="lookingFor" value="male"`)
	assert.Contains(t, body, `>Woman</label>`)
	assert.Contains(t, body, `<ul id="join-location-list" role="listbox" hidden></ul>`)
	assert.Regexp(t, `@get\('/join/stream\?sessionId=[0-9a-f-]{36}'\)`, body)
}

func TestServiceIncompleteSubmit(t *testing.T) {
	t.Parallel()

	_, _, c := newService(t, &searcherMock{})

	rec := c.post("/", url.Values{"gender": {"female"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please select gender(s).")
	assert.Contains(t, body, "Your location is required.")
	assert.Contains(t, body, `name="gender" value="female" data-on-change="@post('/join/gender', {contentType: 'form'})" checked>Woman`)
}

func TestServiceUnknownGender(t *testing.T) {
	t.Parallel()

	_, _, c := newService(t, &searcherMock{})
	rec := c.post("/gender", url.Values{"gender": {"robot"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceJoinFlow(t *testing.T) {
	t.Parallel()

	s := &searcherMock{}
	s.On("SearchLocations", mock.Anything, "Syd").Return([]backend.Location{sydney}, nil).Once()
	_, clock, c := newService(t, s)

	rec := c.post("/gender", url.Values{"gender": {"male"}, "lookingFor": {"female"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="join-genders">`)

	rec = c.post("/location", url.Values{"location": {"Syd"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	clock.fire()

	rec = c.post("/location/select?locationId=2000", url.Values{"location": {"Syd"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div id="join-location-field" class="location">`)
	assert.Contains(t, body, `value="Sydney"`)
	assert.Contains(t, body, `<ul id="join-location-list" role="listbox" hidden></ul>`)

	rec = c.post("/", url.Values{"gender": {"male"}, "lookingFor": {"female"}, "location": {"Sydney"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "dating.rsvp.com.au", u.Host)
	assert.Equal(t, "true", u.Query().Get("join"))
	assert.JSONEq(t, `{"type":"female","string":"Woman"}`, u.Query().Get("seekingGender"))
	s.AssertExpectations(t)
}

func TestServiceBlurWithoutResults(t *testing.T) {
	t.Parallel()

	_, _, c := newService(t, &searcherMock{})

	rec := c.post("/location/blur", url.Values{"location": {""}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aria-invalid="true"`)
}

func TestServiceExpiredSessionRendersWidget(t *testing.T) {
	t.Parallel()

	_, _, c := newService(t, &searcherMock{})
	c.sessionID = "00000000-0000-0000-0000-000000000000"

	rec := c.post("/location", url.Values{"location": {"Mel"}})
	require.Equal(t, http.StatusOK, rec.Code)
	m := sessionIDRe.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2)
	assert.NotEqual(t, c.sessionID, m[1])
}

// notifyWriter reports the first write that contains marker.
type notifyWriter struct {
	*httptest.ResponseRecorder
	marker string
	once   sync.Once
	seen   chan struct{}
}

func (w *notifyWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseRecorder.Write(p)
	if strings.Contains(string(p), w.marker) {
		w.once.Do(func() { close(w.seen) })
	}
	return n, err
}

func TestServiceStreamsCandidates(t *testing.T) {
	t.Parallel()

	s := &searcherMock{}
	s.On("SearchLocations", mock.Anything, "Nowhere").Return([]backend.Location{}, nil).Once()
	_, clock, c := newService(t, s)

	c.post("/location", url.Values{"location": {"Nowhere"}})
	clock.fire()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := httptest.NewRequest(http.MethodGet, "/stream?sessionId="+c.sessionID, nil).WithContext(ctx)
	r.Header.Set("Datastar-Request", "true")

	w := &notifyWriter{ResponseRecorder: httptest.NewRecorder(), marker: "No result", seen: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.h.ServeHTTP(w, r)
	}()

	select {
	case <-w.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("candidate list was not streamed")
	}
	cancel()
	<-done

	body := w.Body.String()
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, `<li class="empty" aria-disabled="true">No result</li>`)
}

func TestServiceStreamUnknownSession(t *testing.T) {
	t.Parallel()

	_, _, c := newService(t, &searcherMock{})
	r := httptest.NewRequest(http.MethodGet, "/stream?sessionId=00000000-0000-0000-0000-000000000000", nil)
	r.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
