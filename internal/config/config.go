package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string

	// Crawl/search service
	FirecrawlAPIKey string
	FirecrawlAPIURL string

	// LLM completion service
	AnthropicAPIKey string
	AnthropicModel  string

	// Payment
	StripeSecretKey     string
	StripeWebhookSecret string

	// Observability (optional)
	SentryDSN string

	// Per-call timeout for outbound HTTP (probes, crawl, search, LLM)
	ExternalTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "LLMScore"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/llmscore.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),

		// Crawl/search service
		FirecrawlAPIKey: envString("FIRECRAWL_API_KEY", ""),
		FirecrawlAPIURL: envString("FIRECRAWL_API_URL", "https://api.firecrawl.dev"),

		// LLM
		AnthropicAPIKey: envString("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envString("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		// Payment
		StripeSecretKey:     envString("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: envString("STRIPE_WEBHOOK_SECRET", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Outbound calls
		ExternalTimeout: envDuration("EXTERNAL_TIMEOUT", 30*time.Second),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production
// deployments. Development allows scans to run against fakes or fail softly.
func validateProduction(cfg *Config) {
	if cfg.FirecrawlAPIKey == "" {
		slog.Error("production deployment requires FIRECRAWL_API_KEY",
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
	if cfg.AnthropicAPIKey == "" {
		slog.Error("production deployment requires ANTHROPIC_API_KEY",
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
