package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/config"
)

type lookupConfig struct {
	Delay     time.Duration `env:"TEST_LOOKUP_DELAY" envDefault:"1s"`
	CacheSize int           `env:"TEST_LOOKUP_CACHE" envDefault:"256"`
}

type endpointConfig struct {
	Endpoint string `env:"TEST_GRAPHQL_ENDPOINT,required"`
}

type cachedConfig struct {
	Name string `env:"TEST_CACHED_NAME" envDefault:"first"`
}

type retryConfig struct {
	Secret string `env:"TEST_RETRY_SECRET,required"`
}

type dotenvConfig struct {
	Value string `env:"TEST_DOTENV_VALUE"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg lookupConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, time.Second, cfg.Delay)
	assert.Equal(t, 256, cfg.CacheSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEST_GRAPHQL_ENDPOINT", "https://api.example.com/graphql")

	var cfg endpointConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://api.example.com/graphql", cfg.Endpoint)
}

func TestLoadCachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CACHED_NAME", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Name)
}

func TestLoadMissingRequiredCanRetry(t *testing.T) {
	var cfg retryConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_RETRY_SECRET", "s3cret")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoadEnvMissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoadNilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[lookupConfig](nil), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse[lookupConfig](nil, nil), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg struct {
			Missing string `env:"TEST_MUST_LOAD_MISSING,required"`
		}
		config.MustLoad(&cfg)
	})
}

func TestParse(t *testing.T) {
	var cfg lookupConfig
	require.NoError(t, config.Parse(&cfg, map[string]string{"TEST_LOOKUP_DELAY": "250ms"}))
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, 256, cfg.CacheSize)

	var bad lookupConfig
	err := config.Parse(&bad, map[string]string{"TEST_LOOKUP_CACHE": "many"})
	require.ErrorIs(t, err, config.ErrParsingConfig)

	var required endpointConfig
	require.ErrorIs(t, config.Parse(&required, map[string]string{}), config.ErrParsingConfig)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_DOTENV_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_DOTENV_VALUE") })

	require.NoError(t, config.LoadEnv(path))
	var cfg dotenvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)
}
