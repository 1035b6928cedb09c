package modules_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/widgetkit/modules"
)

type mountableFunc func(w http.ResponseWriter, r *http.Request)

func (f mountableFunc) Handle() http.Handler { return http.HandlerFunc(f) }

func named(name string) modules.Mountable {
	return mountableFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name + " " + r.URL.Path))
	})
}

func TestRouterMountsProvidedWidgets(t *testing.T) {
	t.Parallel()

	r := modules.Router(modules.RouterOptions{
		Contact: named("contact"),
		Join:    named("join"),
	})

	cases := map[string]struct {
		code int
		body string
	}{
		"/contact/":      {http.StatusOK, "contact /contact/"},
		"/join/stream":   {http.StatusOK, "join /join/stream"},
		"/subscribe/":    {http.StatusNotFound, ""},
		"/unknown/thing": {http.StatusNotFound, ""},
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, want.code, rec.Code)
			if want.body != "" {
				assert.Equal(t, want.body, rec.Body.String())
			}
		})
	}
}
