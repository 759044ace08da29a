package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the booking client.  The
// client must stay usable with no environment at all (the fallback
// data path depends on it), so every field has a default and nothing
// is fatal when missing.
type Config struct {
	Env                string        // application environment (e.g. "dev", "prod")
	CatalogBaseURL     string        // base URL of the catalog REST API
	CatalogTimeout     time.Duration // per-request timeout for catalog calls
	Language           string        // UI language code ("kg" or "ru")
	SessionBackend     string        // session store backend: memory, file or redis
	SessionFile        string        // path of the file-backed session store
	SessionPrefix      string        // key prefix for the redis-backed session store
	PaymentDelay       time.Duration // simulated payment processing delay
	PaymentFailureRate float64       // fraction of simulated payments that decline
	AMQPURL            string        // optional broker URL for booking events; empty disables publishing
	StubPort           string        // port for the stub API server
	JWTSecret          string        // secret the stub API signs demo tokens with
	AccessTTLMin       int           // stub API access token TTL in minutes
}

// Load reads configuration from the environment, first loading a .env
// file when one exists.  Unset variables fall back to defaults that
// point at a local stub API.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:                getenv("APP_ENV", "dev"),
		CatalogBaseURL:     getenv("CATALOG_BASE_URL", "http://localhost:8080/v1"),
		CatalogTimeout:     parseDur(getenv("CATALOG_TIMEOUT", "10s")),
		Language:           getenv("APP_LANG", "kg"),
		SessionBackend:     strings.ToLower(getenv("SESSION_BACKEND", "file")),
		SessionFile:        getenv("SESSION_FILE", ".booking-session.json"),
		SessionPrefix:      getenv("SESSION_PREFIX", "session"),
		PaymentDelay:       parseDur(getenv("PAYMENT_DELAY", "2s")),
		PaymentFailureRate: parseFloat(getenv("PAYMENT_FAILURE_RATE", "0")),
		AMQPURL:            os.Getenv("AMQP_URL"),
		StubPort:           getenv("STUB_PORT", "8080"),
		JWTSecret:          getenv("JWT_SECRET", "dev-secret"),
		AccessTTLMin:       atoi(getenv("ACCESS_TOKEN_TTL_MIN", "60")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > 1 {
		return 0
	}
	return f
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
