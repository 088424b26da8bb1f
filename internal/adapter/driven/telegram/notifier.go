// Package telegram implements the AdminNotifier port against the Telegram
// Bot API. Delivery is best-effort; callers log failures and move on.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.AdminNotifier = (*Notifier)(nil)
	_ driven.AdminNotifier = (*DisabledNotifier)(nil)
)

const defaultBaseURL = "https://api.telegram.org"

// Notifier sends messages to a fixed chat via the Bot API sendMessage call.
type Notifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewNotifier creates a Notifier for the given bot token and chat ID.
func NewNotifier(token, chatID string, logger *slog.Logger) *Notifier {
	return &Notifier{
		token:   token,
		chatID:  chatID,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// NewNotifierWithBaseURL creates a Notifier against a custom API base URL.
// Intended for tests, allowing injection of an httptest server.
func NewNotifierWithBaseURL(token, chatID, baseURL string, client *http.Client, logger *slog.Logger) *Notifier {
	return &Notifier{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// sendMessageRequest is the JSON body of the Bot API sendMessage call.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// sendMessageResponse is the subset of the Bot API response we inspect.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts the text to the configured chat with Markdown formatting.
func (n *Notifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	var apiResp sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode sendMessage response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram sendMessage rejected: %s", apiResp.Description)
	}

	n.logger.Info("admin notification sent")
	return nil
}

// DisabledNotifier is used when no bot token or chat ID is configured. Every
// send is a warning-level no-op, matching the unconfigured-deployment behavior.
type DisabledNotifier struct {
	logger *slog.Logger
}

// NewDisabledNotifier creates a DisabledNotifier.
func NewDisabledNotifier(logger *slog.Logger) *DisabledNotifier {
	return &DisabledNotifier{logger: logger}
}

// Send logs that admin notifications are not configured and does nothing.
func (n *DisabledNotifier) Send(_ context.Context, _ string) error {
	n.logger.Warn("admin notification skipped: telegram bot token or chat id not configured")
	return nil
}
