package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Storage StorageConfig

	Session SessionConfig

	Redis RedisConfig

	Notify NotifyConfig

	// AllowedOrigins is a comma-separated allowlist of origins allowed to call
	// the API from a browser frontend. Example:
	//   https://www.keralatrekking.example,http://localhost:5173
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// StorageConfig points at the hosted object storage (Supabase Storage REST API).
// When URL/key are absent a non-functional demo endpoint is used so the rest of
// the app still boots for local work without storage.
type StorageConfig struct {
	URL        string
	ServiceKey string
	Bucket     string
}

type SessionConfig struct {
	// Secret signs both customer and admin session tokens (HS256).
	Secret string
	// TTLHours bounds token lifetime.
	TTLHours int
	// RequireEmailConfirmation gates sign-in completion at registration time.
	RequireEmailConfirmation bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type NotifyConfig struct {
	AMQPURL      string
	AMQPExchange string

	TelegramBotToken    string
	TelegramAdminChatID int64
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "trekbooking"),
			User:     env("DB_USER", "trekbooking"),
			Password: env("DB_PASSWORD", "trekbooking"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			URL:        env("SUPABASE_URL", "https://demo.supabase.co"),
			ServiceKey: env("SUPABASE_SERVICE_KEY", "demo-service-key"),
			Bucket:     env("STORAGE_BUCKET", "catalog-images"),
		},
		Session: SessionConfig{
			Secret:                   env("SESSION_SECRET", "dev-session-secret"),
			TTLHours:                 envInt("SESSION_TTL_HOURS", 72),
			RequireEmailConfirmation: envBool("REQUIRE_EMAIL_CONFIRMATION", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		Notify: NotifyConfig{
			AMQPURL:             os.Getenv("AMQP_URL"),
			AMQPExchange:        env("AMQP_EXCHANGE", "trekbooking.events"),
			TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
			TelegramAdminChatID: envInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
		},

		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	return v == "1" || v == "true" || v == "yes"
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
