package messages

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when neither the request nor the options name one.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var defaultLocales embed.FS

// Table resolves message keys for a single language.
type Table interface {
	T(key string, args ...string) string
}

// Catalog holds translation tables for every loaded language.
type Catalog struct {
	translations   map[string]map[string]string
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	matcher        language.Matcher
	langs          []string
	mu             sync.RWMutex
}

// New loads translations from adapter and prepares the language matcher.
func New(ctx context.Context, adapter Adapter, opts ...Option) (*Catalog, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	c := &Catalog{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}
	for lang := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguageCode
		}
	}

	c.translations = translations
	c.buildMatcher()
	c.logger.InfoContext(ctx, "messages loaded", slog.Any("languages", c.langs))
	return c, nil
}

// Default returns a catalog backed by the embedded English table.
func Default(ctx context.Context, opts ...Option) (*Catalog, error) {
	return New(ctx, NewFSAdapter(defaultLocales, "locales"), opts...)
}

// DefaultAdapter exposes the embedded tables so they can be layered with overrides.
func DefaultAdapter() Adapter {
	return NewFSAdapter(defaultLocales, "locales")
}

// buildMatcher puts the default language first so the matcher falls back to it.
func (c *Catalog) buildMatcher() {
	langs := make([]string, 0, len(c.translations))
	for lang := range c.translations {
		if lang != c.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	if _, ok := c.translations[c.defaultLang]; ok {
		langs = append([]string{c.defaultLang}, langs...)
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, language.Make(lang))
	}

	c.langs = langs
	c.matcher = language.NewMatcher(tags)
}

// Languages returns the loaded language codes, default language first.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.langs))
	copy(out, c.langs)
	return out
}

// Has reports whether lang has an entry for key.
func (c *Catalog) Has(lang, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.translations[lang][key]
	return ok
}

// Match picks the best loaded language for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if acceptLanguage == "" || len(c.langs) == 0 {
		return c.defaultLang
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.langs[idx]
}

// T renders key in lang, substituting %{name} placeholders from key/value pairs in args.
// Unknown languages fall back to the default language; unknown keys render as the key
// unless fallback is disabled.
func (c *Catalog) T(lang, key string, args ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.translations[lang]
	if !ok {
		table = c.translations[c.defaultLang]
	}

	text, ok := table[key]
	if !ok {
		if c.missingLogMode {
			c.logger.Warn("message not found", slog.String("lang", lang), slog.String("key", key))
		}
		if !c.fallbackToKey {
			return ""
		}
		text = key
	}

	return format(text, args)
}

// Tc renders key in the language stored in ctx by Middleware.
func (c *Catalog) Tc(ctx context.Context, key string, args ...string) string {
	return c.T(GetLocale(ctx), key, args...)
}

// For binds the catalog to lang.
func (c *Catalog) For(lang string) Table {
	return boundTable{catalog: c, lang: lang}
}

// Lookup returns the raw, unformatted text for key in lang.
func (c *Catalog) Lookup(lang, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.translations[lang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}
	text, ok := table[key]
	if !ok {
		return "", fmt.Errorf("messages: key %q not found for %s", key, lang)
	}
	return text, nil
}

type boundTable struct {
	catalog *Catalog
	lang    string
}

func (b boundTable) T(key string, args ...string) string {
	return b.catalog.T(b.lang, key, args...)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format fills %{name} placeholders. Odd trailing arguments are ignored and unknown
// placeholders are kept verbatim.
func format(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
