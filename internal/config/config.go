package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	PublicURL       string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	Timezone        string        `env:"TIMEZONE" envDefault:"Europe/Paris"`

	StoreDriver    string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	SessionStore  string        `env:"SESSION_STORE" envDefault:"redis"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	JWTSecret     string        `env:"JWT_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@openmic.local"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Open Mic"`

	DiscordWebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
	DiscordUsername     string `env:"DISCORD_USERNAME" envDefault:"Open Mic"`

	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"30s"`

	// ReminderInterval à 0 désactive les rappels automatiques.
	ReminderLead     time.Duration `env:"REMINDER_LEAD" envDefault:"24h"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"0s"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c *Config) EmailEnabled() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

// DiscordEnabled reports whether the host-channel webhook is configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET is required and cannot be empty")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 characters")
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
			c.DatabaseURL = "postgres://localhost:5432/openmic?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StoreDriver)
	}

	switch c.SessionStore {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("config: SESSION_STORE must be %q or %q, got %q", DriverRedis, DriverMemory, c.SessionStore)
	}

	if c.SessionTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL and RESET_TOKEN_TTL must be positive")
	}

	if c.ReminderInterval < 0 || c.ReminderLead < 0 {
		return fmt.Errorf("config: REMINDER_LEAD and REMINDER_INTERVAL must not be negative")
	}

	if c.EmailEnabled() && (c.SMTPPort <= 0 || c.SMTPPort > 65535) {
		return fmt.Errorf("config: invalid SMTP_PORT (%d)", c.SMTPPort)
	}

	return nil
}
