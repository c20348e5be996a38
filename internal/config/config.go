package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Stripe    StripeConfig    `yaml:"stripe"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Cron      CronConfig      `yaml:"cron"`
	Rental    RentalConfig    `yaml:"rental"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
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

// AuthConfig contains session verification settings. Tokens are minted
// by the external auth provider and verified here with a shared secret.
type AuthConfig struct {
	JWTSecret   string   `yaml:"jwt_secret"`
	AdminEmails []string `yaml:"admin_emails"`
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	APIKey string `yaml:"api_key"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey     string `yaml:"api_key"`
	FromEmail  string `yaml:"from_email"`
	FromName   string `yaml:"from_name"`
	AdminEmail string `yaml:"admin_email"`
}

// CronConfig protects the HTTP cron endpoints
type CronConfig struct {
	Secret string `yaml:"secret"`
}

// RentalConfig contains the state machine's time windows
type RentalConfig struct {
	ClaimWindowHours int `yaml:"claim_window_hours"`
	ApprovalSLAHours int `yaml:"approval_sla_hours"`
	SweepBatchSize   int `yaml:"sweep_batch_size"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings (seconds precision)
type SchedulerConfig struct {
	AutoDeclineRentals    string `yaml:"auto_decline_rentals"`
	AutoReleaseDeposits   string `yaml:"auto_release_deposits"`
	DispatchNotifications string `yaml:"dispatch_notifications"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
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

	// Auth
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("ADMIN_EMAILS"); val != "" {
		c.Auth.AdminEmails = splitAndTrim(val)
	}

	// Stripe
	if val := os.Getenv("STRIPE_API_KEY"); val != "" {
		c.Stripe.APIKey = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("PLATFORM_ADMIN_EMAIL"); val != "" {
		c.SendGrid.AdminEmail = val
	}

	// Cron
	if val := os.Getenv("CRON_SECRET"); val != "" {
		c.Cron.Secret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks the configuration and applies defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Cron.Secret == "" {
		return fmt.Errorf("cron secret is required")
	}

	// Rental window defaults
	if c.Rental.ClaimWindowHours == 0 {
		c.Rental.ClaimWindowHours = 168 // 7 days
	}
	if c.Rental.ApprovalSLAHours == 0 {
		c.Rental.ApprovalSLAHours = 48
	}
	if c.Rental.SweepBatchSize == 0 {
		c.Rental.SweepBatchSize = 100
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Scheduler defaults
	if c.Scheduler.AutoDeclineRentals == "" {
		c.Scheduler.AutoDeclineRentals = "0 0 * * * *" // hourly
	}
	if c.Scheduler.AutoReleaseDeposits == "" {
		c.Scheduler.AutoReleaseDeposits = "0 30 * * * *" // hourly, offset
	}
	if c.Scheduler.DispatchNotifications == "" {
		c.Scheduler.DispatchNotifications = "0 * * * * *" // every minute
	}

	return nil
}

// ClaimWindow returns the time an owner has to file a damage claim
// after a confirmed return.
func (c *Config) ClaimWindow() time.Duration {
	return time.Duration(c.Rental.ClaimWindowHours) * time.Hour
}

// ApprovalSLA returns how long a borrow request may sit pending before
// the auto-decline sweep rejects it.
func (c *Config) ApprovalSLA() time.Duration {
	return time.Duration(c.Rental.ApprovalSLAHours) * time.Hour
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

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
