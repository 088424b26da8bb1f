package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every VIPGATE_ env var that Load() reads.
var allConfigKeys = []string{
	"VIPGATE_LISTEN_ADDR",
	"VIPGATE_CREDENTIALS_PATH",
	"VIPGATE_SESSION_DB_PATH",
	"VIPGATE_TELEGRAM_BOT_TOKEN",
	"VIPGATE_TELEGRAM_CHAT_ID",
	"VIPGATE_SMTP_ADDR",
	"VIPGATE_SMTP_FROM",
	"VIPGATE_SMTP_USERNAME",
	"VIPGATE_SMTP_PASSWORD",
	"VIPGATE_CLEANUP_INTERVAL",
	"VIPGATE_SECURE_COOKIES",
}

// isolateConfigEnv saves and unsets all VIPGATE_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("VIPGATE_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("VIPGATE_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("VIPGATE_SESSION_DB_PATH", "/tmp/test.db")
	t.Setenv("VIPGATE_TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("VIPGATE_TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("VIPGATE_SMTP_ADDR", "smtp.example.com:587")
	t.Setenv("VIPGATE_SMTP_FROM", "noreply@example.com")
	t.Setenv("VIPGATE_CLEANUP_INTERVAL", "30m")
	t.Setenv("VIPGATE_SECURE_COOKIES", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/creds.json", cfg.CredentialsPath)
	assert.Equal(t, "/tmp/test.db", cfg.SessionDBPath)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "-100200300", cfg.TelegramChatID)
	assert.Equal(t, "smtp.example.com:587", cfg.SMTPAddr)
	assert.Equal(t, "noreply@example.com", cfg.SMTPFrom)
	assert.Equal(t, 30*time.Minute, cfg.CleanupInterval)
	assert.True(t, cfg.SecureCookies)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "credentials.json", cfg.CredentialsPath)
	assert.Equal(t, "vipgate.db", cfg.SessionDBPath)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_InvalidCleanupInterval(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("VIPGATE_CLEANUP_INTERVAL", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIPGATE_CLEANUP_INTERVAL")
}

func TestLoad_NegativeCleanupInterval(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("VIPGATE_CLEANUP_INTERVAL", "-5m")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIPGATE_CLEANUP_INTERVAL")
}

func TestLoad_InvalidSecureCookies(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("VIPGATE_SECURE_COOKIES", "maybe")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIPGATE_SECURE_COOKIES")
}

func TestHasTelegram(t *testing.T) {
	cfg := &Config{TelegramToken: "123:abc", TelegramChatID: "42"}
	assert.True(t, cfg.HasTelegram())

	cfg.TelegramChatID = ""
	assert.False(t, cfg.HasTelegram())
}

func TestHasSMTP(t *testing.T) {
	cfg := &Config{SMTPAddr: "smtp.example.com:587", SMTPFrom: "noreply@example.com"}
	assert.True(t, cfg.HasSMTP())

	cfg.SMTPAddr = ""
	assert.False(t, cfg.HasSMTP())
}
