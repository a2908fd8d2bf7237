package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/internal/config"
)

type testConfig struct {
	Log  config.Log
	API  config.API
	Site config.Site
}

func (c *testConfig) Validate() error {
	return c.API.Validate()
}

func TestNewWithEnvironment(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := config.NewWithEnvironment[testConfig](map[string]string{})
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, "http://localhost:8000", cfg.API.ServerBaseURL())
		assert.Equal(t, 60*time.Second, cfg.API.CatalogCacheTTL)
		assert.Equal(t, "ru", cfg.Site.Locale)
		assert.Equal(t, "dev", cfg.Site.Build)
	})

	t.Run("Should prefer the internal api origin for server calls", func(t *testing.T) {
		cfg, err := config.NewWithEnvironment[testConfig](map[string]string{
			"API_INTERNAL_BASE_URL": "http://backend:8000",
			"API_PUBLIC_BASE_URL":   "https://api.example.com",
			"LOG_FORMAT":            "json",
			"LOG_LEVEL":             "DEBUG",
		})
		require.NoError(t, err)

		assert.Equal(t, "http://backend:8000", cfg.API.ServerBaseURL())
		assert.Equal(t, "https://api.example.com", cfg.API.PublicBaseURL)
		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	})

	t.Run("Should reject a relative api origin", func(t *testing.T) {
		_, err := config.NewWithEnvironment[testConfig](map[string]string{
			"API_PUBLIC_BASE_URL": "/api",
		})
		assert.ErrorContains(t, err, "must be absolute")
	})

	t.Run("Should reject an unknown log format", func(t *testing.T) {
		_, err := config.NewWithEnvironment[testConfig](map[string]string{
			"LOG_FORMAT": "xml",
		})
		assert.Error(t, err)
	})
}

func TestFeatureSwitches(t *testing.T) {
	assert.False(t, config.Search{IndexName: "products"}.Enabled())
	assert.True(t, config.Search{AppID: "app", APIKey: "key", IndexName: "products"}.Enabled())
	assert.False(t, config.Kafka{}.Enabled())
	assert.True(t, config.Kafka{Addresses: []string{"localhost:9092"}}.Enabled())
	assert.False(t, config.Redis{}.Enabled())
}
