package config

import (
	"fmt"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string        `env:"PRACTICUM_TOKEN"`
	PracticumEndpoint string        `env:"PRACTICUM_ENDPOINT" envDefault:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	TelegramToken     string        `env:"TELEGRAM_TOKEN"`
	TelegramChatID    string        `env:"TELEGRAM_CHAT_ID"` // Numeric chat id or @channelusername
	TelegramAPIURL    string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	RetryPeriod       time.Duration `env:"RETRY_PERIOD" envDefault:"10m"`
	PollSchedule      string        `env:"POLL_SCHEDULE"` // Cron spec, overrides RetryPeriod when set
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	NotifyInterval    time.Duration `env:"NOTIFY_RATE" envDefault:"1s"` // Minimum gap between two Telegram sends
	DatabaseURL       string        `env:"DATABASE_URL"`                // Optional cycle journal
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile           string        `env:"LOG_FILE" envDefault:"main.log"`
	Environment       string        `env:"ENVIRONMENT" envDefault:"development"`
}

// MissingError lists required settings that are absent. The bot cannot start without them.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Keys, ", "))
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var missing []string
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if cfg.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	if !validChatID(cfg.TelegramChatID) {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: want a numeric id or @username", cfg.TelegramChatID)
	}
	if cfg.RetryPeriod <= 0 {
		return nil, fmt.Errorf("invalid RETRY_PERIOD %s: must be positive", cfg.RetryPeriod)
	}
	if cfg.NotifyInterval < 0 {
		return nil, fmt.Errorf("invalid NOTIFY_RATE %s: must not be negative", cfg.NotifyInterval)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	return cfg, nil
}

func validChatID(chat string) bool {
	if name, ok := strings.CutPrefix(chat, "@"); ok {
		return name != "" && !strings.ContainsAny(name, " \t\n@")
	}
	_, err := strconv.ParseInt(chat, 10, 64)
	return err == nil
}
