package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"

	UserStoreFirestore = "firestore"
	UserStorePostgres  = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Mail       MailConfig       `yaml:"mail"`
	UserStore  UserStoreConfig  `yaml:"user_store"`
	Firebase   FirebaseConfig   `yaml:"firebase"`
	Database   DatabaseConfig   `yaml:"database"`
	Render     RenderConfig     `yaml:"render"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig contains HTTP trigger endpoint settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	PushSecret string `yaml:"push_secret"` // empty disables push-token checks
}

// MailConfig contains the sender account and transport settings.
// Account and Password (or SendGridAPIKey) form the credential pair; when
// either half is missing the transport stays unconfigured.
type MailConfig struct {
	Provider       string `yaml:"provider"` // "smtp" or "sendgrid"
	Account        string `yaml:"account"`
	Password       string `yaml:"password"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromName       string `yaml:"from_name"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
}

// UserStoreConfig selects where user profiles are read from
type UserStoreConfig struct {
	Backend    string `yaml:"backend"` // "firestore" or "postgres"
	Collection string `yaml:"collection"`
}

// FirebaseConfig contains Firebase Admin SDK settings
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RenderConfig contains email rendering settings
type RenderConfig struct {
	TimeZone string `yaml:"time_zone"` // IANA name; empty means the process local zone
}

// DispatcherConfig contains per-invocation limits
type DispatcherConfig struct {
	SendTimeout time.Duration `yaml:"send_timeout"` // 0 = rely on the transport's own timeouts
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides, defaults and validation.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Mail
	if val := os.Getenv("MAIL_PROVIDER"); val != "" {
		c.Mail.Provider = val
	}
	if val := os.Getenv("GMAIL_EMAIL"); val != "" {
		c.Mail.Account = val
	}
	if val := os.Getenv("GMAIL_PASSWORD"); val != "" {
		c.Mail.Password = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Mail.SendGridAPIKey = val
	}
	if val := os.Getenv("MAIL_FROM_NAME"); val != "" {
		c.Mail.FromName = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Mail.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Mail.Port)
	}

	// User store
	if val := os.Getenv("USER_STORE"); val != "" {
		c.UserStore.Backend = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firebase.CredentialsFile = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("PUSH_SECRET"); val != "" {
		c.Server.PushSecret = val
	}

	// Render
	if val := os.Getenv("RENDER_TIME_ZONE"); val != "" {
		c.Render.TimeZone = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	c.Mail.Provider = strings.ToLower(c.Mail.Provider)
	if c.Mail.Provider == "" {
		c.Mail.Provider = MailProviderSMTP
	}
	if c.Mail.FromName == "" {
		c.Mail.FromName = "E-Learning App"
	}
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}

	c.UserStore.Backend = strings.ToLower(c.UserStore.Backend)
	if c.UserStore.Backend == "" {
		c.UserStore.Backend = UserStoreFirestore
	}
	if c.UserStore.Collection == "" {
		c.UserStore.Collection = "users"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid. Missing mail credentials
// are allowed: they leave the transport unconfigured.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Mail.Provider {
	case MailProviderSMTP:
		if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Mail.Port)
		}
	case MailProviderSendGrid:
	default:
		return fmt.Errorf("unsupported mail provider: %s", c.Mail.Provider)
	}

	switch c.UserStore.Backend {
	case UserStoreFirestore:
	case UserStorePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unsupported user store backend: %s", c.UserStore.Backend)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid render time zone: %w", err)
	}

	if c.Dispatcher.SendTimeout < 0 {
		return fmt.Errorf("send timeout must not be negative")
	}

	return nil
}

// MailConfigured reports whether the credential pair for the selected
// provider is complete.
func (c *Config) MailConfigured() bool {
	if c.Mail.Account == "" {
		return false
	}
	if c.Mail.Provider == MailProviderSendGrid {
		return c.Mail.SendGridAPIKey != ""
	}
	return c.Mail.Password != ""
}

// Location returns the time zone used to render timestamps
func (c *Config) Location() (*time.Location, error) {
	if c.Render.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Render.TimeZone)
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
