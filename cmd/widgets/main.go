// Command widgets serves the marketing-site widgets: contact form,
// event-subscription modal and join lead-capture widget.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/modules"
	"github.com/dmitrymomot/widgetkit/modules/contact"
	"github.com/dmitrymomot/widgetkit/modules/join"
	"github.com/dmitrymomot/widgetkit/modules/subscribe"
	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/botcheck"
	"github.com/dmitrymomot/widgetkit/pkg/cache"
	"github.com/dmitrymomot/widgetkit/pkg/clientip"
	"github.com/dmitrymomot/widgetkit/pkg/config"
	"github.com/dmitrymomot/widgetkit/pkg/environment"
	"github.com/dmitrymomot/widgetkit/pkg/graphql"
	"github.com/dmitrymomot/widgetkit/pkg/httpserver"
	"github.com/dmitrymomot/widgetkit/pkg/location"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
	"github.com/dmitrymomot/widgetkit/pkg/messages"
	"github.com/dmitrymomot/widgetkit/pkg/ratelimiter"
	"github.com/dmitrymomot/widgetkit/pkg/requestid"
	"github.com/dmitrymomot/widgetkit/pkg/session"
)

type GraphQLConfig struct {
	Endpoint        string        `env:"GRAPHQL_ENDPOINT,required"`
	Timeout         time.Duration `env:"GRAPHQL_TIMEOUT" envDefault:"10s"`
	MaxRetries      int           `env:"GRAPHQL_MAX_RETRIES" envDefault:"2"`
	BreakerFailures int           `env:"GRAPHQL_BREAKER_FAILURES" envDefault:"5"`
	BreakerRecovery time.Duration `env:"GRAPHQL_BREAKER_RECOVERY" envDefault:"30s"`
}

type LookupConfig struct {
	Delay     time.Duration `env:"LOOKUP_DELAY" envDefault:"1s"`
	CacheSize int           `env:"LOOKUP_CACHE_SIZE" envDefault:"1024"`
	CacheTTL  time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"10m"`
}

type AppConfig struct {
	Environment     string   `env:"APP_ENV" envDefault:"development"`
	ServiceName     string   `env:"SERVICE_NAME" envDefault:"widgets"`
	MessagesPath    string   `env:"MESSAGES_PATH"`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	ProductURL      string   `env:"JOIN_PRODUCT_URL" envDefault:"https://dating.rsvp.com.au"`
	IPHeaders       []string `env:"CLIENT_IP_HEADERS" envSeparator:","`
	MountPath       string   `env:"WIDGETS_MOUNT_PATH" envDefault:"/widgets"`

	HTTP     httpserver.Config
	GraphQL  GraphQLConfig
	BotCheck botcheck.Config
	Session  session.Config
	Lookup   LookupConfig
	Limit    ratelimiter.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg AppConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env, err := environment.Parse(cfg.Environment)
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := cfg.BotCheck.Configured(); err != nil {
		if !env.IsDevelopment() {
			return fmt.Errorf("%s: %w", env, err)
		}
		log.WarnContext(ctx, "bot check not configured, contact form accepts a placeholder token",
			logger.Component("botcheck"))
	}

	catalog, err := loadMessages(ctx, cfg, log)
	if err != nil {
		return err
	}

	client, err := graphql.New(cfg.GraphQL.Endpoint,
		graphql.WithTimeout(cfg.GraphQL.Timeout),
		graphql.WithMaxRetries(cfg.GraphQL.MaxRetries),
		graphql.WithCircuitBreaker(graphql.NewCircuitBreaker(cfg.GraphQL.BreakerFailures, 1, cfg.GraphQL.BreakerRecovery)),
		graphql.WithUserAgent(cfg.ServiceName),
		graphql.WithLogger(log),
	)
	if err != nil {
		return err
	}
	api, err := backend.New(client)
	if err != nil {
		return err
	}

	errorHandler := func(slotID string) handler.ErrorHandler[handler.Context] {
		return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			Fragment: errorFragment,
			Target:   "#" + slotID,
			Messages: catalog,
		})
	}
	// Each widget gets its own budget so joining does not use up contact submissions.
	limiter := func() (ratelimiter.Limiter, error) { return ratelimiter.NewBucket(cfg.Limit) }
	contactLimit, err := limiter()
	if err != nil {
		return err
	}
	subscribeLimit, err := limiter()
	if err != nil {
		return err
	}
	joinLimit, err := limiter()
	if err != nil {
		return err
	}

	locations := cache.NewLRUCache[string, []backend.Location](cfg.Lookup.CacheSize, cfg.Lookup.CacheTTL)

	contactSvc := contact.NewService(
		contact.Config{
			Action:      cfg.MountPath + modules.ContactPath,
			SiteKey:     cfg.BotCheck.SiteKey,
			Environment: env,
		},
		api, catalog,
		contact.WithServiceLogger(log),
		contact.WithErrorHandler(errorHandler(contact.ErrorSlotID)),
		contact.WithBotCheck(botcheck.NewFromConfig(cfg.BotCheck, botcheck.WithLogger(log))),
		contact.WithSessionConfig(cfg.Session),
		contact.WithSubmitLimiter(contactLimit),
	)
	defer contactSvc.Close()

	subscribeSvc := subscribe.NewService(
		subscribe.Config{Action: cfg.MountPath + modules.SubscribePath},
		api, catalog,
		subscribe.WithServiceLogger(log),
		subscribe.WithErrorHandler(errorHandler(subscribe.ErrorSlotID)),
		subscribe.WithSessionConfig(cfg.Session),
		subscribe.WithSubmitLimiter(subscribeLimit),
	)
	defer subscribeSvc.Close()

	joinSvc := join.NewService(
		join.Config{Action: cfg.MountPath + modules.JoinPath, ProductURL: cfg.ProductURL},
		api, catalog,
		join.WithServiceLogger(log),
		join.WithErrorHandler(errorHandler(join.ErrorSlotID)),
		join.WithSessionConfig(cfg.Session),
		join.WithSubmitLimiter(joinLimit),
		join.WithLookupOptions(
			location.WithDelay(cfg.Lookup.Delay),
			location.WithCache(locations),
			location.WithContext(ctx),
		),
	)
	defer joinSvc.Close()

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(cfg.IPHeaders...),
		environment.Middleware(env),
		messages.Middleware(catalog),
	)
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, backendReachable(client)))
	r.Mount(cfg.MountPath, modules.Router(modules.RouterOptions{
		Contact:   contactSvc,
		Subscribe: subscribeSvc,
		Join:      joinSvc,
	}))

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	log.InfoContext(ctx, "starting widgets server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("mount", cfg.MountPath),
		slog.Any("languages", catalog.Languages()),
	)
	if err := server.Run(ctx, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadMessages layers MESSAGES_PATH, when set, over the embedded tables.
func loadMessages(ctx context.Context, cfg AppConfig, log *slog.Logger) (*messages.Catalog, error) {
	adapter := messages.DefaultAdapter()
	if cfg.MessagesPath != "" {
		adapter = &messages.LayeredAdapter{Base: adapter, Override: messages.NewFileAdapter(cfg.MessagesPath)}
	}
	return messages.New(ctx, adapter,
		messages.WithDefaultLanguage(cfg.DefaultLanguage),
		messages.WithLogger(log),
	)
}

// errorFragment renders a request error inside the widget's error slot.
func errorFragment(p handler.ErrorParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="error" data-request-id="%s">%s</p>`,
			templ.EscapeString(p.RequestID), templ.EscapeString(p.Message))
		return err
	})
}

// backendReachable fails readiness while the GraphQL circuit breaker is open.
func backendReachable(c *graphql.Client) httpserver.Check {
	return func(context.Context) error {
		if c.CircuitState() == graphql.CircuitOpen {
			return graphql.ErrCircuitOpen
		}
		return nil
	}
}
