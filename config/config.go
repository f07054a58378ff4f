package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultWebhookURL     = "https://baklol23.app.n8n.cloud/webhook/ac028f2c-741e-4bc8-9257-e3d8c5e5ee5a"
	DefaultImageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

type Config struct {
	Server  ServerConfig
	Webhook WebhookConfig
	Images  ImagesConfig
	Stats   StatsConfig
	App     AppConfig

	// DotEnvLoaded reports whether a .env file was found. The logger does not
	// exist yet when config is loaded, so main logs this instead.
	DotEnvLoaded bool
}

type ServerConfig struct {
	Port      string
	StaticDir string
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type ImagesConfig struct {
	Dir       string
	Timeout   time.Duration
	UserAgent string
}

type StatsConfig struct {
	// Schedule is a cron spec; empty disables the job.
	Schedule string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	loaded := godotenv.Load() == nil

	webhookTimeout, err := getEnvAsDuration("WEBHOOK_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	imageTimeout, err := getEnvAsDuration("IMAGE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			StaticDir: getEnv("STATIC_DIR", "public"),
		},
		Webhook: WebhookConfig{
			URL:     getEnv("WEBHOOK_URL", DefaultWebhookURL),
			Timeout: webhookTimeout,
		},
		Images: ImagesConfig{
			Dir:       getEnv("IMAGES_DIR", "images"),
			Timeout:   imageTimeout,
			UserAgent: getEnv("IMAGE_USER_AGENT", DefaultImageUserAgent),
		},
		Stats: StatsConfig{
			Schedule: os.Getenv("STATS_SCHEDULE"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		DotEnvLoaded: loaded,
	}
	if _, set := os.LookupEnv("STATS_SCHEDULE"); !set {
		cfg.Stats.Schedule = "@every 5m"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Server.Port)
	}

	u, err := url.Parse(c.Webhook.URL)
	if err != nil {
		return fmt.Errorf("WEBHOOK_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("WEBHOOK_URL must be an http(s) URL, got %q", c.Webhook.URL)
	}
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive")
	}

	if c.Images.Dir == "" {
		return fmt.Errorf("IMAGES_DIR is required")
	}
	if c.Images.Timeout <= 0 {
		return fmt.Errorf("IMAGE_TIMEOUT must be positive")
	}

	return nil
}

// Addr is the listen address; the relay binds every interface.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (\"90s\") or seconds, got %q: %w", key, valueStr, err)
	}

	return value, nil
}
