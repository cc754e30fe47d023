package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ykvlv/lesson-reminder/assets"
	"github.com/ykvlv/lesson-reminder/internal/domain"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string `envconfig:"BOT_TOKEN" required:"true"`
	ChatID      int64  `envconfig:"CHAT_ID" required:"true"`
	ChatID2     int64  `envconfig:"CHAT_ID_2"` // 0 = not configured
	Message1    string `envconfig:"MESSAGE_1"`
	Message2    string `envconfig:"MESSAGE_2"`
	Railway     string `envconfig:"RAILWAY_ENVIRONMENT"`
	Port        int    `envconfig:"PORT" default:"8000"`
	TZ          string `envconfig:"TIMEZONE" default:"Europe/Moscow"`
	Targets     string `envconfig:"REMINDER_TARGETS"`         // empty = domain.DefaultTargets
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	DBPath      string `envconfig:"DB_PATH"`                  // empty disables the delivery journal
	MetricsAddr string `envconfig:"METRICS_ADDR"`             // empty disables /metrics
}

// Load reads environment variables into Config. Outside Railway a .env file
// in the working directory is loaded first, if present.
func Load() (Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		// Missing .env is fine; real env vars always win.
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.Targets == "" {
		cfg.Targets = domain.DefaultTargets
	}
	if cfg.Message1 == "" {
		cfg.Message1 = assets.Message(assets.DirectMessage)
	}
	if cfg.Message2 == "" {
		cfg.Message2 = assets.Message(assets.GroupMessage)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values envconfig accepts but the app cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.BotToken == "" {
		errs = append(errs, errors.New("BOT_TOKEN is empty"))
	}
	if c.ChatID == 0 {
		errs = append(errs, errors.New("CHAT_ID must be a non-zero chat id"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TargetTable(); err != nil {
		errs = append(errs, fmt.Errorf("REMINDER_TARGETS: %w", err))
	}
	return errors.Join(errs...)
}

// Recipients returns the configured chats in order: CHAT_ID, then CHAT_ID_2 if set.
func (c Config) Recipients() []domain.Recipient {
	rs := []domain.Recipient{{ChatID: c.ChatID, Kind: domain.RecipientDirect, Message: c.Message1}}
	if c.ChatID2 != 0 {
		rs = append(rs, domain.Recipient{ChatID: c.ChatID2, Kind: domain.RecipientGroup, Message: c.Message2})
	}
	return rs
}

// EnvName is "Railway" when deployed there, "Local" otherwise.
func (c Config) EnvName() string {
	if c.Railway != "" {
		return "Railway"
	}
	return "Local"
}

// HTTPAddr is the health server listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// Location returns the fixed process timezone.
func (c Config) Location() (*time.Location, error) {
	return domain.LoadTZ(c.TZ)
}

// TargetTable parses REMINDER_TARGETS.
func (c Config) TargetTable() ([]domain.Target, error) {
	return domain.ParseTargets(c.Targets)
}
