// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	CredentialsPath string
	SessionDBPath   string
	TelegramToken   string
	TelegramChatID  string
	SMTPAddr        string
	SMTPFrom        string
	SMTPUsername    string
	SMTPPassword    string
	CleanupInterval time.Duration
	SecureCookies   bool
}

// HasTelegram returns true when both TelegramToken and TelegramChatID are
// non-empty. Used by the composition root to decide whether to create a real
// Telegram notifier at startup or fall back to the disabled one.
func (c *Config) HasTelegram() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

// HasSMTP returns true when both SMTPAddr and SMTPFrom are non-empty.
func (c *Config) HasSMTP() bool {
	return c.SMTPAddr != "" && c.SMTPFrom != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Notifier settings (VIPGATE_TELEGRAM_BOT_TOKEN, VIPGATE_TELEGRAM_CHAT_ID,
// VIPGATE_SMTP_ADDR, VIPGATE_SMTP_FROM) are optional; if absent, the app starts
// with the corresponding notifications disabled.
// Optional variables with defaults: VIPGATE_LISTEN_ADDR (127.0.0.1:8080),
// VIPGATE_CREDENTIALS_PATH (credentials.json), VIPGATE_SESSION_DB_PATH (vipgate.db),
// VIPGATE_CLEANUP_INTERVAL (1h), VIPGATE_SECURE_COOKIES (false).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("VIPGATE_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	credentialsPath := "credentials.json"
	if v, ok := os.LookupEnv("VIPGATE_CREDENTIALS_PATH"); ok {
		credentialsPath = v
	}

	sessionDBPath := "vipgate.db"
	if v, ok := os.LookupEnv("VIPGATE_SESSION_DB_PATH"); ok {
		sessionDBPath = v
	}

	cleanupInterval := time.Hour
	if v, ok := os.LookupEnv("VIPGATE_CLEANUP_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("VIPGATE_CLEANUP_INTERVAL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("VIPGATE_CLEANUP_INTERVAL must be positive, got %q", v)
		}
		cleanupInterval = parsed
	}

	secureCookies := false
	if v, ok := os.LookupEnv("VIPGATE_SECURE_COOKIES"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("VIPGATE_SECURE_COOKIES has invalid boolean %q: %w", v, err)
		}
		secureCookies = parsed
	}

	return &Config{
		ListenAddr:      listenAddr,
		CredentialsPath: credentialsPath,
		SessionDBPath:   sessionDBPath,
		TelegramToken:   os.Getenv("VIPGATE_TELEGRAM_BOT_TOKEN"),
		TelegramChatID:  os.Getenv("VIPGATE_TELEGRAM_CHAT_ID"),
		SMTPAddr:        os.Getenv("VIPGATE_SMTP_ADDR"),
		SMTPFrom:        os.Getenv("VIPGATE_SMTP_FROM"),
		SMTPUsername:    os.Getenv("VIPGATE_SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("VIPGATE_SMTP_PASSWORD"),
		CleanupInterval: cleanupInterval,
		SecureCookies:   secureCookies,
	}, nil
}
