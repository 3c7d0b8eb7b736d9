package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultGoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      []byte
	AuthTokenTTL   time.Duration
	GoogleClientID string
	GoogleJWKSURL  string
	CORSOrigin     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	EnableMetrics  bool
}

func FromEnv() (Config, error) {
	secretRaw := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	var secret []byte
	if secretRaw != "" {
		if len(secretRaw) < 32 {
			return Config{}, errors.New("JWT_SECRET too short (need >= 32 bytes)")
		}
		secret = []byte(secretRaw)
	}

	cfg := Config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":3000"),
		DatabaseURL:    getenvDefault("DATABASE_URL", "file:moodtrackr.db"),
		JWTSecret:      secret,
		GoogleClientID: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleJWKSURL:  getenvDefault("GOOGLE_JWKS_URL", DefaultGoogleJWKSURL),
		CORSOrigin:     getenvDefault("CORS_ORIGIN", "http://localhost:5173"),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        parseIntDefault(getenvDefault("REDIS_DB", "0"), 0),
	}
	cfg.AuthTokenTTL = parseDurationDefault(getenvDefault("AUTH_TOKEN_TTL", "168h"), 168*time.Hour)
	cfg.EnableMetrics = parseBoolDefault(getenvDefault("ENABLE_METRICS", "true"), true) && cfg.RedisAddr != ""

	if len(cfg.JWTSecret) == 0 {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.GoogleClientID == "" {
		return Config{}, errors.New("GOOGLE_CLIENT_ID is required")
	}
	return cfg, nil
}

func getenvDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func parseBoolDefault(value string, defaultValue bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntDefault(value string, defaultValue int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationDefault(value string, defaultValue time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func (c Config) String() string {
	return fmt.Sprintf(
		"http=%s db=%s cors=%s google=%v redis=%s metrics=%v token_ttl=%s",
		c.HTTPAddr,
		redactDatabaseURL(c.DatabaseURL),
		c.CORSOrigin,
		c.GoogleClientID != "",
		redactRedis(c.RedisAddr),
		c.EnableMetrics,
		c.AuthTokenTTL,
	)
}

func redactDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "<none>"
	}
	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		return raw // sqlite file path, nothing secret
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "<set>"
	}
	user := "?"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	host := u.Host
	if host == "" {
		host = "?"
	}
	db := strings.TrimPrefix(u.Path, "/")
	if db == "" {
		db = "?"
	}
	return fmt.Sprintf("%s@%s/%s", user, host, db)
}

func redactRedis(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "<none>"
	}
	return addr
}
