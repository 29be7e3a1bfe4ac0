package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer         string        // Optional: issuer claim for session tokens (default: phoneauth)
	SessionKeyFile string        // Optional: PKCS8 Ed25519 key; created on first start. Empty means an ephemeral key
	SessionTTL     time.Duration // Optional: session token lifetime (default: 336h)
	AdminToken     string        // Optional: bearer token for /v1/admin. Empty disables those routes

	DatabaseFile string // Optional: path to SQLite database file (default: ./phoneauth.db)
	RedisURL     string // Optional: redis:// URL of the ephemeral store (default: redis://localhost:6379/0)
	PepperFile   string // Optional: path to the OTP digest pepper; created on first start (default: ./pepper)
	SettingsFile string // Optional: YAML operator settings; missing means defaults (default: ./settings.yaml)
	OTPFallback  bool   // Optional: mirror codes to SQLite and use them while redis is down (default: false)

	SMSBaseURL string        // Optional: 2Factor API base (default: https://2factor.in)
	SMSTimeout time.Duration // Optional: per-send timeout (default: 15s)

	TrustProxyHeaders bool // Optional: read the client address from X-Forwarded-For / X-Real-IP (default: false)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("PHONEAUTH_ISSUER", "phoneauth"),
		SessionKeyFile: os.Getenv("PHONEAUTH_SESSION_KEY_FILE"),
		SessionTTL:     getEnvDurationOrDefault("PHONEAUTH_SESSION_TTL", 14*24*time.Hour),
		AdminToken:     os.Getenv("PHONEAUTH_ADMIN_TOKEN"),

		DatabaseFile: getEnvOrDefault("PHONEAUTH_DATABASE_FILE", "phoneauth.db"),
		RedisURL:     getEnvOrDefault("PHONEAUTH_REDIS_URL", "redis://localhost:6379/0"),
		PepperFile:   getEnvOrDefault("PHONEAUTH_PEPPER_FILE", "pepper"),
		SettingsFile: getEnvOrDefault("PHONEAUTH_SETTINGS_FILE", "settings.yaml"),
		OTPFallback:  getEnvBoolOrDefault("PHONEAUTH_OTP_FALLBACK", false),

		SMSBaseURL: getEnvOrDefault("PHONEAUTH_SMS_BASE_URL", "https://2factor.in"),
		SMSTimeout: getEnvDurationOrDefault("PHONEAUTH_SMS_TIMEOUT", 15*time.Second),

		TrustProxyHeaders: getEnvBoolOrDefault("TRUST_PROXY_HEADERS", false),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
