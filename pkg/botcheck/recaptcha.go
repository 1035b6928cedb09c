package botcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

// DefaultVerifyURL is Google's siteverify endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Config is loaded from the environment.
type Config struct {
	Secret    string        `env:"RECAPTCHA_SECRET"`
	SiteKey   string        `env:"RECAPTCHA_SITE_KEY"`
	VerifyURL string        `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	MinScore  float64       `env:"RECAPTCHA_MIN_SCORE" envDefault:"0"`
	Timeout   time.Duration `env:"RECAPTCHA_TIMEOUT" envDefault:"5s"`
}

// Configured reports ErrNotConfigured unless both the site key and the secret
// are set. Deployments outside development must not run without them.
func (c Config) Configured() error {
	if strings.TrimSpace(c.SiteKey) == "" || strings.TrimSpace(c.Secret) == "" {
		return ErrNotConfigured
	}
	return nil
}

// NewFromConfig returns a reCAPTCHA verifier when a secret is configured and
// Presence otherwise.
func NewFromConfig(cfg Config, opts ...Option) Verifier {
	if cfg.Secret == "" {
		return Presence()
	}
	base := []Option{
		WithVerifyURL(cfg.VerifyURL),
		WithMinScore(cfg.MinScore),
		WithTimeout(cfg.Timeout),
	}
	return NewRecaptcha(cfg.Secret, append(base, opts...)...)
}

// Recaptcha verifies tokens with the reCAPTCHA siteverify API. It accepts v2
// checkbox tokens and, with a minimum score, v3 tokens.
type Recaptcha struct {
	secret     string
	verifyURL  string
	minScore   float64
	action     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Recaptcha)

func WithVerifyURL(u string) Option {
	return func(r *Recaptcha) {
		if u != "" {
			r.verifyURL = u
		}
	}
}

// WithMinScore rejects v3 tokens scoring below score. Zero disables the check.
func WithMinScore(score float64) Option {
	return func(r *Recaptcha) {
		if score >= 0 && score <= 1 {
			r.minScore = score
		}
	}
}

// WithAction requires the token to have been issued for action.
func WithAction(action string) Option {
	return func(r *Recaptcha) {
		r.action = action
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(r *Recaptcha) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(r *Recaptcha) {
		if client != nil {
			r.httpClient = client
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Recaptcha) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRecaptcha(secret string, opts ...Option) *Recaptcha {
	r := &Recaptcha{
		secret:     secret,
		verifyURL:  DefaultVerifyURL,
		timeout:    5 * time.Second,
		httpClient: http.DefaultClient,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to siteverify. Network and decoding failures are
// reported as ErrUnavailable so callers can tell them from a rejected token.
func (r *Recaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	if !Present(token) {
		return ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	form := url.Values{"secret": {r.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	r.logger.DebugContext(ctx, "bot check verified",
		logger.Component("botcheck"),
		logger.Duration(time.Since(start)),
		slog.Bool("success", out.Success),
		slog.Float64("score", out.Score),
		slog.String("hostname", out.Hostname),
	)

	switch {
	case !out.Success:
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(out.ErrorCodes, ","))
	case r.action != "" && out.Action != "" && out.Action != r.action:
		return fmt.Errorf("%w: %q", ErrActionMismatch, out.Action)
	case r.minScore > 0 && out.Score < r.minScore:
		return fmt.Errorf("%w: %.2f", ErrLowScore, out.Score)
	}
	return nil
}
