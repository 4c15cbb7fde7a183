package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultAdminEmail receives permit notifications when no quote mailbox is
// configured through the environment.
const DefaultAdminEmail = "admin@overdrivepermits.com"

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	SMTP        SMTPConfig
	Quote       QuoteConfig
	RateLimit   RateLimitConfig
	Environment string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// SMTPConfig holds the raw mail transport settings. Validation of the
// combination (credentials present, host resolvable) happens in the mailer,
// not here.
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Secure             bool
	RejectUnauthorized bool
	FromEmail          string
	FromName           string
}

// QuoteConfig holds the destination for permit notifications
type QuoteConfig struct {
	AdminEmail string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PERMIT_SERVICE_PORT", "8084"),
			AllowedOrigins: splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		SMTP: SMTPConfig{
			Host:               os.Getenv("SMTP_HOST"),
			Port:               smtpPort,
			Username:           os.Getenv("SMTP_USER"),
			Password:           os.Getenv("SMTP_PASS"),
			Secure:             os.Getenv("SMTP_SECURE") == "true",
			RejectUnauthorized: os.Getenv("SMTP_REJECT_UNAUTHORIZED") != "false",
			FromEmail:          os.Getenv("SMTP_FROM"),
			FromName:           os.Getenv("SMTP_FROM_NAME"),
		},
		Quote: QuoteConfig{
			AdminEmail: firstNonEmpty(os.Getenv("QUOTE_EMAIL"), os.Getenv("ADMIN_EMAIL"), DefaultAdminEmail),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
