package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Database backends understood by DB_TYPE.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

type Config struct {
	Database DatabaseConfig
	Mail     MailConfig
	Server   ServerConfig
	CORS     CORSConfig
	Log      LogConfig

	warnings []string
}

type DatabaseConfig struct {
	// Type is the resolved backend: sqlite, postgres or mysql.
	Type       string
	URL        string
	SQLitePath string
}

type MailConfig struct {
	Host        string
	Port        string
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig reads the environment (and an optional .env file) once.
// Problems that have a safe fallback are recorded as warnings instead of failing.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Type:       strings.ToLower(strings.TrimSpace(getEnv("DB_TYPE", BackendSQLite))),
			URL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
			SQLitePath: getEnv("SQLITE_PATH", "users.db"),
		},
		Mail: MailConfig{
			Host:        getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:        getEnv("SMTP_PORT", "465"),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("FROM_EMAIL", ""),
			FromName:    getEnv("FROM_NAME", "Home Automation System"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "5000"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if path := os.Getenv("SMTP_PASSWORD_FILE"); path != "" && config.Mail.Password == "" {
		secret, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading SMTP_PASSWORD_FILE %q: %w", path, err)
		}
		config.Mail.Password = strings.TrimSpace(string(secret))
	}

	if config.Mail.FromAddress == "" {
		config.Mail.FromAddress = config.Mail.Username
	}

	config.resolveBackend()

	if config.Mail.Username == "" || config.Mail.Password == "" {
		config.warn("SMTP credentials are not set; verification emails will fail to send")
	}

	return config, nil
}

// Warnings returns the configuration fallbacks applied while loading.
func (c *Config) Warnings() []string {
	return c.warnings
}

func (c *Config) warn(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// resolveBackend falls back to the embedded store when a client/server
// backend is requested without a connection string, or the type is unknown.
func (c *Config) resolveBackend() {
	switch c.Database.Type {
	case BackendSQLite:
	case BackendPostgres, BackendMySQL:
		if c.Database.URL == "" {
			c.warn("DB_TYPE=%s but DATABASE_URL is empty; falling back to sqlite at %s", c.Database.Type, c.Database.SQLitePath)
			c.Database.Type = BackendSQLite
		}
	default:
		c.warn("unknown DB_TYPE %q; falling back to sqlite at %s", c.Database.Type, c.Database.SQLitePath)
		c.Database.Type = BackendSQLite
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
