package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "WEBHOOK_URL", "WEBHOOK_TIMEOUT", "IMAGES_DIR", "IMAGE_TIMEOUT", "IMAGE_USER_AGENT", "STATIC_DIR", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, DefaultWebhookURL, cfg.Webhook.URL)
	assert.Equal(t, 120*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Images.Timeout)
	assert.Equal(t, "images", cfg.Images.Dir)
	assert.Equal(t, DefaultImageUserAgent, cfg.Images.UserAgent)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("WEBHOOK_URL", "http://localhost:5678/webhook/test")
	t.Setenv("WEBHOOK_TIMEOUT", "5")
	t.Setenv("IMAGE_TIMEOUT", "1500ms")
	t.Setenv("STATS_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5678/webhook/test", cfg.Webhook.URL)
	assert.Equal(t, 5*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Images.Timeout)
	assert.Empty(t, cfg.Stats.Schedule)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "3000"},
			Webhook: WebhookConfig{URL: DefaultWebhookURL, Timeout: time.Second},
			Images:  ImagesConfig{Dir: "images", Timeout: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }},
		{"webhook without scheme", func(c *Config) { c.Webhook.URL = "example.com/hook" }},
		{"bad webhook timeout", func(c *Config) { c.Webhook.Timeout = -1 }},
		{"empty images dir", func(c *Config) { c.Images.Dir = "" }},
		{"zero image timeout", func(c *Config) { c.Images.Timeout = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("WEBHOOK_TIMEOUT", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBHOOK_TIMEOUT")
	assert.Contains(t, err.Error(), `"abc"`)
	assert.NotContains(t, err.Error(), "must be positive")
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("RELAY_TEST_TIMEOUT", "")
	d, err := getEnvAsDuration("RELAY_TEST_TIMEOUT", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	t.Setenv("RELAY_TEST_TIMEOUT", "45")
	d, err = getEnvAsDuration("RELAY_TEST_TIMEOUT", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	t.Setenv("RELAY_TEST_TIMEOUT", "2m")
	d, err = getEnvAsDuration("RELAY_TEST_TIMEOUT", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	t.Setenv("RELAY_TEST_TIMEOUT", "soon")
	_, err = getEnvAsDuration("RELAY_TEST_TIMEOUT", time.Minute)
	assert.Error(t, err)
}
