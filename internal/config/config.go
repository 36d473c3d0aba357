package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL = "https://aphrodite-admin.onrender.com"

	// DefaultCartSessionSecret is for local runs only. Anyone who knows it
	// can mint cart session tokens.
	DefaultCartSessionSecret = "dev-cart-secret"
)

type Config struct {
	Port               string
	UpstreamTimeout    time.Duration
	HealthProbeTimeout time.Duration

	// Origin of the admin backend. Relative image paths resolve against it too.
	BackendURL string

	// CORS
	CORSAllowOrigins []string

	// Hosts besides the backend that the image proxy may fetch from.
	ImageAllowHosts []string

	// Cart persistence: memory | file | redis | postgres
	CartStore     string
	CartFileDir   string
	CartTTL       time.Duration
	RedisAddr     string
	DatabaseDSN   string
	RunMigrations bool

	CartSessionSecret string

	// Empty disables order event publishing.
	RabbitMQURL string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		UpstreamTimeout:    parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		HealthProbeTimeout: parseDuration(getenv("HEALTH_PROBE_TIMEOUT", "2s"), 2*time.Second),

		BackendURL: strings.TrimRight(getenv("BACKEND_URL", DefaultBackendURL), "/"),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
		ImageAllowHosts:  splitList(getenv("IMAGE_ALLOW_HOSTS", "")),

		CartStore:     strings.ToLower(getenv("CART_STORE", "memory")),
		CartFileDir:   getenv("CART_FILE_DIR", "./data/carts"),
		CartTTL:       parseDuration(getenv("CART_TTL", "720h"), 720*time.Hour),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		DatabaseDSN:   getenv("DATABASE_DSN", ""),
		RunMigrations: parseBool(getenv("RUN_MIGRATIONS", "true"), true),

		CartSessionSecret: getenv("CART_SESSION_SECRET", DefaultCartSessionSecret),

		RabbitMQURL: getenv("RABBITMQ_URL", ""),
	}

	return cfg
}

// DefaultSessionSecret reports whether cart sessions are signed with the
// built-in development secret.
func (c Config) DefaultSessionSecret() bool {
	return c.CartSessionSecret == DefaultCartSessionSecret
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	out := splitList(v)
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
