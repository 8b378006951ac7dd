package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Development origins of the web client.
var defaultCORSAllowOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Security SecurityConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	AutoMigrate     bool
	Seed            bool
}

type AuthConfig struct {
	// Required gates every resource endpoint behind a bearer token.
	// Off by default to match the development deployment.
	Required            bool
	JWTSecret           string
	Issuer              string
	AccessTokenDuration time.Duration
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8000"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:            getEnv("DB_PATH", "finora.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "finora"),
			Password:        getEnv("DB_PASSWORD", "finora"),
			Name:            getEnv("DB_NAME", "finora"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", true),
			Seed:            getBoolEnv("SEED_DATABASE", false),
		},
		Auth: AuthConfig{
			Required:            getBoolEnv("AUTH_REQUIRED", false),
			JWTSecret:           getEnv("JWT_SECRET", ""),
			Issuer:              getEnv("JWT_ISSUER", "finora-api"),
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_TOKEN_DURATION", 24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	config.Server.CORSAllowOrigins = loadCORSAllowOrigins()

	if config.Auth.JWTSecret == "" && !config.IsProduction() {
		config.Auth.JWTSecret = "finora-development-secret"
	}

	return config
}

// DSN returns the driver specific connection string.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			problems = append(problems, "DB_PATH cannot be empty when using the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required when using the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]",
			c.Database.Driver, DriverSQLite, DriverPostgres))
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET must be set in production environments")
	}

	if c.Auth.AccessTokenDuration <= 0 {
		problems = append(problems, "JWT_ACCESS_TOKEN_DURATION must be positive")
	}

	if c.Security.RateLimitPerSecond < 0 || c.Security.RateLimitBurst < 0 {
		problems = append(problems, "rate limit settings cannot be negative")
	}

	for _, origin := range c.Server.CORSAllowOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid CORS origin '%s'", origin))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
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

// loadCORSAllowOrigins reads a comma separated allow-list, falling back to the
// local development origins of the web client.
func loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if corsOrigins == "" {
		origins := make([]string, len(defaultCORSAllowOrigins))
		copy(origins, defaultCORSAllowOrigins)
		return origins
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(corsOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
