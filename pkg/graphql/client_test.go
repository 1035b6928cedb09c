package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/graphql"
)

var (
	searchOp = graphql.MustParse(`query search($keyword: String!) { search(keyword: $keyword) { id name } }`)
	saveOp   = graphql.MustParse(`mutation save($name: String!) { save(name: $name) { ok } }`)
)

type searchData struct {
	Search []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"search"`
}

func newTestClient(t *testing.T, url string, opts ...graphql.Option) *graphql.Client {
	t.Helper()
	opts = append([]graphql.Option{graphql.WithBackoff(graphql.FixedBackoff{Interval: time.Millisecond})}, opts...)
	c, err := graphql.New(url, opts...)
	require.NoError(t, err)
	return c
}

func TestNewValidatesEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "ftp://example.com", "http://", "://bad"} {
		_, err := graphql.New(endpoint)
		assert.ErrorIs(t, err, graphql.ErrInvalidEndpoint, endpoint)
	}
}

func TestClientDo(t *testing.T) {
	var got graphql.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"search":[{"id":"1","name":"Sydney"}]}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, graphql.WithHeader("X-Api-Key", "secret"))

	var out searchData
	err := c.Do(context.Background(), searchOp, graphql.Vars{"keyword": "syd"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "search", got.OperationName)
	assert.Equal(t, searchOp.Document, got.Query)
	assert.Equal(t, graphql.Vars{"keyword": "syd"}, got.Variables)
	require.Len(t, out.Search, 1)
	assert.Equal(t, "Sydney", out.Search[0].Name)
}

func TestClientResponseErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"bad input","extensions":{"code":"BAD_USER_INPUT"}}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	require.Error(t, err)
	assert.ErrorIs(t, err, graphql.ErrResponse)
	assert.Equal(t, graphql.KindGraphQL, graphql.KindOf(err))

	var respErrs graphql.ResponseErrors
	require.True(t, errors.As(err, &respErrs))
	assert.Equal(t, "BAD_USER_INPUT", respErrs[0].Code())
	assert.Equal(t, "bad input", respErrs.Error())
}

func TestClientRetriesQueries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"search":[]}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, graphql.WithMaxRetries(2))
	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, graphql.WithMaxRetries(1))
	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	require.Error(t, err)
	assert.ErrorIs(t, err, graphql.ErrRetriesExhausted)
	assert.Equal(t, graphql.KindHTTPStatus, graphql.KindOf(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDoesNotRetryMutations(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, graphql.WithMaxRetries(3))
	err := c.Do(context.Background(), saveOp, graphql.Vars{"name": "x"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, graphql.ErrHTTPStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, graphql.WithMaxRetries(3))
	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	assert.ErrorIs(t, err, graphql.ErrHTTPStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientDecodeErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/garbage":
			_, _ = w.Write([]byte(`<html>`))
		case "/null":
			_, _ = w.Write([]byte(`{"data":null}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"search":"not a list"}}`))
		}
	}))
	defer server.Close()

	for _, path := range []string{"/garbage", "/null", "/mismatch"} {
		c := newTestClient(t, server.URL+path)
		err := c.Do(context.Background(), searchOp, nil, &searchData{})
		assert.Equal(t, graphql.KindDecode, graphql.KindOf(err), path)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(t, server.URL, graphql.WithTimeout(20*time.Millisecond), graphql.WithMaxRetries(0))
	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	assert.Equal(t, graphql.KindTimeout, graphql.KindOf(err))
}

func TestClientCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server notices a client disconnect only once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := newTestClient(t, server.URL)
	err := c.Do(ctx, searchOp, nil, &searchData{})
	assert.Equal(t, graphql.KindCancelled, graphql.KindOf(err))
}

func TestClientCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := graphql.NewCircuitBreaker(2, 1, time.Hour)
	c := newTestClient(t, server.URL, graphql.WithCircuitBreaker(cb), graphql.WithMaxRetries(0))

	for range 2 {
		_ = c.Do(context.Background(), searchOp, nil, &searchData{})
	}
	assert.Equal(t, graphql.CircuitOpen, cb.State())
	assert.Equal(t, graphql.CircuitOpen, c.CircuitState())

	err := c.Do(context.Background(), searchOp, nil, &searchData{})
	assert.ErrorIs(t, err, graphql.ErrCircuitOpen)
	assert.Equal(t, graphql.KindCircuitOpen, graphql.KindOf(err))
	assert.Equal(t, int32(2), calls.Load())
}

type stubTransport struct {
	data string
	err  error
}

func (s stubTransport) Do(_ context.Context, _ graphql.Operation, _ graphql.Vars, out any) error {
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.data), out)
}

func TestExecute(t *testing.T) {
	res := graphql.Execute[searchData](context.Background(), stubTransport{data: `{"search":[{"id":"7"}]}`}, searchOp, nil)
	v, ok := res.Value()
	require.True(t, ok)
	assert.Equal(t, "7", v.Search[0].ID)
	assert.Equal(t, graphql.KindNone, res.Kind())

	res = graphql.Execute[searchData](context.Background(), stubTransport{err: graphql.ErrTimeout}, searchOp, nil)
	assert.False(t, res.IsOk())
	assert.Equal(t, graphql.KindTimeout, res.Kind())
	assert.ErrorIs(t, res.Err(), graphql.ErrTimeout)
}
