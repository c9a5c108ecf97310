package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Config struct {
	App struct {
		Port         string
		StaticDir    string
		TemplatesDir string
		DataDir      string
	}
	SMTP    SMTPConfig
	Contact struct {
		Recipient string
	}
	Postgres PostgresConfig
	// OrdersEnabled is set when DB_HOST is configured; without a database the
	// server still serves contact mail and the SPA.
	OrdersEnabled bool
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. PORT is required; the process refuses to start without it.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("PORT")
	if cfg.App.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	cfg.App.StaticDir = envOr("STATIC_DIR", "web/dist")
	cfg.App.TemplatesDir = envOr("TEMPLATES_DIR", "email-templates")
	cfg.App.DataDir = envOr("DATA_DIR", "data")

	cfg.SMTP.Host = envOr("SMTP_HOST", "smtp.gmail.com")

	smtpPort := envOr("SMTP_PORT", "587")
	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number, got %q", smtpPort)
	}
	cfg.SMTP.Port = port

	cfg.SMTP.Secure = os.Getenv("SMTP_SECURE") == "true"
	cfg.SMTP.User = os.Getenv("SMTP_USER")
	cfg.SMTP.Password = os.Getenv("SMTP_PASS")

	cfg.Contact.Recipient = envOr("CONTACT_RECIPIENT", "info@tricast360.de")

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	if cfg.Postgres.Host != "" {
		cfg.OrdersEnabled = true

		cfg.Postgres.Port = os.Getenv("DB_PORT")
		if cfg.Postgres.Port == "" {
			return nil, fmt.Errorf("DB_PORT is required when DB_HOST is set")
		}
		cfg.Postgres.User = os.Getenv("DB_USER")
		if cfg.Postgres.User == "" {
			return nil, fmt.Errorf("DB_USER is required when DB_HOST is set")
		}
		cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
		if cfg.Postgres.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
		}
		cfg.Postgres.DBName = os.Getenv("DB_NAME")
		if cfg.Postgres.DBName == "" {
			return nil, fmt.Errorf("DB_NAME is required when DB_HOST is set")
		}
		cfg.Postgres.SSLMode = envOr("DB_SSLMODE", "disable")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
