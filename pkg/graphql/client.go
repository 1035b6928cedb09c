package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize caps the bytes read from a response body.
const maxResponseSize = 1 << 20

// Vars holds operation variables.
type Vars map[string]any

// Transport sends an operation and decodes its data into out.
type Transport interface {
	Do(ctx context.Context, op Operation, vars Vars, out any) error
}

// Request is the wire form of a GraphQL call.
type Request struct {
	Query         string `json:"query"`
	Variables     Vars   `json:"variables,omitempty"`
	OperationName string `json:"operationName,omitempty"`
}

// Response is the wire form of a GraphQL reply.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors ResponseErrors  `json:"errors,omitempty"`
}

// ResponseError is one entry of the "errors" array.
type ResponseError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code when the server set one.
func (e ResponseError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

type ResponseErrors []ResponseError

func (errs ResponseErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is match ErrResponse.
func (errs ResponseErrors) Is(target error) bool {
	return target == ErrResponse
}

// Client sends operations to a single GraphQL endpoint. Safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    http.Header
	timeout    time.Duration
	maxRetries int
	backoff    Backoff
	breaker    *CircuitBreaker
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// New validates endpoint and applies opts.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidEndpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidEndpoint)
	}

	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		headers:    http.Header{"User-Agent": []string{"widgetkit-graphql/1.0"}},
		timeout:    10 * time.Second,
		maxRetries: 2,
		backoff:    DefaultBackoff(),
		logger:     slog.New(slog.DiscardHandler),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do sends op and decodes the "data" member into out. Idempotent operations are retried
// on temporary failures; mutations are attempted once.
func (c *Client) Do(ctx context.Context, op Operation, vars Vars, out any) error {
	payload, err := json.Marshal(Request{Query: op.Document, Variables: vars, OperationName: op.Name})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return ErrCircuitOpen
	}

	retries := 0
	if op.Idempotent() {
		retries = c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoff.NextInterval(attempt)); err != nil {
				return err
			}
		}

		status, err := c.attempt(ctx, payload, out)
		c.record(err)
		if err == nil {
			return nil
		}

		lastErr = err
		c.logger.DebugContext(ctx, "graphql attempt failed",
			slog.String("operation", op.Name),
			slog.Int("attempt", attempt+1),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)

		if !isTemporary(status, err) {
			return err
		}
	}

	if retries == 0 {
		return lastErr
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, retries+1, lastErr)
}

// CircuitState reports the breaker state. Without a breaker it is always closed.
func (c *Client) CircuitState() CircuitState {
	if c.breaker == nil {
		return CircuitClosed
	}
	return c.breaker.State()
}

// record feeds the breaker with endpoint health. Errors reported inside a well-formed
// response mean the endpoint is up.
func (c *Client) record(err error) {
	if c.breaker == nil {
		return
	}
	if err == nil || errors.Is(err, ErrResponse) || errors.Is(err, context.Canceled) {
		c.breaker.RecordSuccess()
		return
	}
	c.breaker.RecordFailure()
}

func (c *Client) attempt(ctx context.Context, payload []byte, out any) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, snippet(body))
	}

	var gqlResp Response
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(gqlResp.Errors) > 0 {
		return resp.StatusCode, gqlResp.Errors
	}
	if len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return resp.StatusCode, ErrEmptyData
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return resp.StatusCode, nil
}

// isTemporary treats network failures, timeouts, 5xx and 408/425/429 as retryable.
func isTemporary(status int, err error) bool {
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransport):
		return true
	case errors.Is(err, ErrHTTPStatus):
		switch status {
		case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
			return true
		}
		return status >= 500
	default:
		return false
	}
}

// snippet flattens a response body for error messages.
func snippet(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Execute runs op on t and decodes the data into a T.
func Execute[T any](ctx context.Context, t Transport, op Operation, vars Vars) Result[T] {
	var out T
	if err := t.Do(ctx, op, vars, &out); err != nil {
		return Fail[T](err)
	}
	return Ok(out)
}
