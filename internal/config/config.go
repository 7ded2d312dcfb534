package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Session     SessionConfig
	Attachments AttachmentConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// SessionConfig controls the cookie session used by the client application.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AttachmentConfig limits attachment uploads.
type AttachmentConfig struct {
	MaxBytes int64
}

const defaultAttachmentMaxBytes = 10 << 20

// Load inspects the environment and builds a Config value. A .env file in the
// working directory and a YAML file named by RECIPES_CONFIG_FILE are read
// first; real environment variables always win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v, err := newViper(os.Getenv("RECIPES_CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			v.GetString("SERVER_ADDR"),
			v.GetString("ADDR"),
			":8080",
		),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			v.GetString("DATABASE_URL"),
			v.GetString("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(v.GetString("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(v.GetString("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(v.GetString("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(v.GetString("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(v.GetString("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(v.GetString("LOG_LEVEL"), "info"),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(v.GetString("SESSION_LIFETIME"), 24*time.Hour),
		CookieName:   firstNonEmpty(v.GetString("SESSION_COOKIE_NAME"), "recipes_session"),
		CookieDomain: strings.TrimSpace(v.GetString("SESSION_COOKIE_DOMAIN")),
		CookieSecure: parseBoolWithDefault(v.GetString("SESSION_COOKIE_SECURE"), false),
	}

	cfg.Attachments = AttachmentConfig{
		MaxBytes: int64(parseIntWithDefault(v.GetString("ATTACHMENT_MAX_BYTES"), defaultAttachmentMaxBytes)),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Attachments.MaxBytes <= 0 {
		return Config{}, fmt.Errorf("attachment size limit must be positive")
	}

	return cfg, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntWithDefault(value string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}
