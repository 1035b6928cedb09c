package botcheck_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/botcheck"
)

func siteverify(t *testing.T, reply map[string]any, got *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if got != nil {
			*got = r.PostForm
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPresence(t *testing.T) {
	t.Parallel()

	v := botcheck.Presence()
	assert.ErrorIs(t, v.Verify(context.Background(), "  ", ""), botcheck.ErrMissingToken)
	assert.NoError(t, v.Verify(context.Background(), "token", ""))
}

func TestNewFromConfigWithoutSecret(t *testing.T) {
	t.Parallel()

	v := botcheck.NewFromConfig(botcheck.Config{})
	assert.NoError(t, v.Verify(context.Background(), "anything", ""))
}

func TestRecaptchaSuccess(t *testing.T) {
	t.Parallel()

	var got url.Values
	srv := siteverify(t, map[string]any{"success": true, "hostname": "example.com"}, &got)

	v := botcheck.NewRecaptcha("s3cret", botcheck.WithVerifyURL(srv.URL))
	require.NoError(t, v.Verify(context.Background(), "tok", "198.51.100.1"))

	assert.Equal(t, "s3cret", got.Get("secret"))
	assert.Equal(t, "tok", got.Get("response"))
	assert.Equal(t, "198.51.100.1", got.Get("remoteip"))
}

func TestRecaptchaFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply map[string]any
		opts  []botcheck.Option
		want  error
	}{
		{"rejected", map[string]any{"success": false, "error-codes": []string{"invalid-input-response"}}, nil, botcheck.ErrRejected},
		{"low score", map[string]any{"success": true, "score": 0.2}, []botcheck.Option{botcheck.WithMinScore(0.5)}, botcheck.ErrLowScore},
		{"wrong action", map[string]any{"success": true, "action": "login"}, []botcheck.Option{botcheck.WithAction("contact")}, botcheck.ErrActionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := siteverify(t, tt.reply, nil)
			v := botcheck.NewRecaptcha("s3cret", append(tt.opts, botcheck.WithVerifyURL(srv.URL))...)
			assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), tt.want)
		})
	}
}

func TestRecaptchaMissingTokenSkipsRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("siteverify must not be called")
	}))
	defer srv.Close()

	v := botcheck.NewRecaptcha("s3cret", botcheck.WithVerifyURL(srv.URL))
	assert.ErrorIs(t, v.Verify(context.Background(), "", ""), botcheck.ErrMissingToken)
}

func TestRecaptchaUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := botcheck.NewRecaptcha("s3cret", botcheck.WithVerifyURL(srv.URL))
	assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), botcheck.ErrUnavailable)

	srv.Close()
	assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), botcheck.ErrUnavailable)
}

func TestConfigConfigured(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, botcheck.Config{}.Configured(), botcheck.ErrNotConfigured)
	assert.ErrorIs(t, botcheck.Config{SiteKey: "site"}.Configured(), botcheck.ErrNotConfigured)
	assert.ErrorIs(t, botcheck.Config{Secret: "secret", SiteKey: " "}.Configured(), botcheck.ErrNotConfigured)
	assert.NoError(t, botcheck.Config{SiteKey: "site", Secret: "secret"}.Configured())
}
