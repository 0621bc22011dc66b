package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"

	insecureJWTSecret   = "supersecretkey"
	defaultBasePrice    = "850.00"
	defaultContactEmail = "chris@uplandimports.com"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	Env           string        `yaml:"env"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Storage       StorageConfig `yaml:"storage"`
	Pricing       PricingConfig `yaml:"pricing"`
	Mail          MailConfig    `yaml:"mail"`
	Admin         AdminConfig   `yaml:"admin"`
}

type StorageConfig struct {
	Driver         string `yaml:"driver"`
	DatabasePath   string `yaml:"database_path"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type PricingConfig struct {
	// BasePrice is the configurator starting price, as a decimal string.
	BasePrice string `yaml:"base_price"`
}

// MailConfig holds the SMTP settings for inquiry notifications. Empty
// credentials leave the notifier disabled rather than failing startup.
type MailConfig struct {
	Host                    string        `yaml:"host"`
	Port                    int           `yaml:"port"`
	Username                string        `yaml:"username"`
	Password                string        `yaml:"password"`
	From                    string        `yaml:"from"`
	To                      string        `yaml:"to"`
	Timeout                 time.Duration `yaml:"timeout"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// LoadConfig builds the configuration from the environment (optionally
// populated from a .env file in the working directory) and then applies
// overrides from the YAML file at path, if any.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg := &Config{
		Addr:          getEnv("STOREFRONT_ADDR", ":8080"),
		Env:           getEnv("STOREFRONT_ENV", ""),
		JWTSecret:     getEnv("STOREFRONT_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		TokenDuration: 1 * time.Hour,
		Storage: StorageConfig{
			Driver:       getEnv("STOREFRONT_STORAGE", StorageMemory),
			DatabasePath: getEnv("STOREFRONT_DATABASE_PATH", "storefront.db"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     port,
			Username: getEnv("GMAIL_USER", os.Getenv("EMAIL_USER")),
			Password: os.Getenv("GMAIL_APP_PASSWORD"),
			From:     getEnv("GMAIL_USER", os.Getenv("EMAIL_USER")),
			To:       getEnv("CONTACT_EMAIL", defaultContactEmail),
		},
		Admin: AdminConfig{
			Email:        os.Getenv("ADMIN_EMAIL"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate fills defaults for unset values and rejects configurations the
// server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.TokenDuration <= 0 {
		c.TokenDuration = 1 * time.Hour
	}

	// Tokens are only issued when an administrator is configured.
	if c.AdminEnabled() && (c.JWTSecret == "" || (c.JWTSecret == insecureJWTSecret && !c.IsDevelopment())) {
		return errors.New("jwt_secret must be set to a non-default value outside development when admin is configured")
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageMemory
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.DatabasePath == "" {
			return errors.New("storage.database_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Pricing.BasePrice == "" {
		c.Pricing.BasePrice = defaultBasePrice
	}
	base, err := decimal.NewFromString(c.Pricing.BasePrice)
	if err != nil || base.IsNegative() {
		return fmt.Errorf("invalid pricing.base_price %q", c.Pricing.BasePrice)
	}

	if c.Mail.Port <= 0 {
		c.Mail.Port = 587
	}
	if c.Mail.Timeout <= 0 {
		c.Mail.Timeout = 10 * time.Second
	}
	if c.Mail.CircuitFailureThreshold <= 0 {
		c.Mail.CircuitFailureThreshold = 5
	}
	if c.Mail.CircuitReset <= 0 {
		c.Mail.CircuitReset = time.Minute
	}
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}

	return nil
}

// AdminEnabled reports whether admin sign-in and the quote management routes
// are served.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Email != "" && c.Admin.PasswordHash != ""
}

// IsDevelopment reports whether the server runs in the development
// environment, from the config file or STOREFRONT_ENV.
func (c *Config) IsDevelopment() bool {
	env := c.Env
	if env == "" {
		env = os.Getenv("STOREFRONT_ENV")
	}
	return env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
