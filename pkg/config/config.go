// ==============================================================================
// CONFIG PACKAGE - pkg/config/config.go
// ==============================================================================
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Storage  StorageConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DashboardURL string
	LoginURL     string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	// StatusTTL bounds how long a projected KYB status may be served stale.
	StatusTTL time.Duration
}

type SessionConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type StorageConfig struct {
	BasePath          string
	PublicBaseURL     string
	LogoBucket        string
	DocumentBucket    string
	MaxUploadBytes    int64
	AllowedExtensions []string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool
	// ConfirmURL is the externally reachable /auth/confirm endpoint that
	// emailed one-time links point at.
	ConfirmURL string
}

// Enabled reports whether outbound email is configured.
func (e EmailConfig) Enabled() bool {
	return e.SMTPHost != ""
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			DashboardURL: getEnv("DASHBOARD_URL", "/dashboard"),
			LoginURL:     getEnv("LOGIN_URL", "/login"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:       normalizeRedisURL(getEnv("REDIS_URL", "localhost:6379")),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getIntEnv("REDIS_DB", 0),
			StatusTTL: getDurationEnv("KYB_STATUS_CACHE_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			JWTSecret:       getEnv("JWT_SECRET", "change-this-secret"),
			TokenExpiration: getDurationEnv("SESSION_TOKEN_EXPIRATION", 24*time.Hour),
		},
		Storage: StorageConfig{
			BasePath:       getEnv("STORAGE_BASE_PATH", "./uploads"),
			PublicBaseURL:  getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/storage"),
			LogoBucket:     getEnv("STORAGE_LOGO_BUCKET", "organization-logos"),
			DocumentBucket: getEnv("STORAGE_DOCUMENT_BUCKET", "kyb-documents"),
			MaxUploadBytes: getInt64Env("STORAGE_MAX_UPLOAD_BYTES", 10*1024*1024),
			AllowedExtensions: getSliceEnv("STORAGE_ALLOWED_EXTENSIONS",
				[]string{".jpg", ".jpeg", ".png", ".pdf", ".doc", ".docx"}),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			SMTPFrom:     getEnv("SMTP_FROM", ""),
			SMTPUseTLS:   getBoolEnv("SMTP_USE_TLS", false),
			ConfirmURL:   getEnv("AUTH_CONFIRM_URL", "http://localhost:8080/auth/confirm"),
		},
	}
}

// ValidateCore checks configuration a service cannot run without.
func (c *Config) ValidateCore() error {
	if c.Database.URL == "" {
		return errMissing("DATABASE_URL")
	}
	if c.Session.JWTSecret == "" || c.Session.JWTSecret == "change-this-secret" {
		return errMissing("JWT_SECRET")
	}
	return nil
}

type configError string

func (e configError) Error() string { return string(e) }

func errMissing(key string) error {
	return configError("required configuration missing: " + key)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
