// Package mailer implements the UserNotifier port over SMTP. Delivery is
// best-effort; callers log failures and never fail the primary request.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.UserNotifier = (*Mailer)(nil)
	_ driven.UserNotifier = (*DisabledMailer)(nil)
)

// sendMailFunc matches smtp.SendMail; swapped out in tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends plain-text mail through a single SMTP relay.
type Mailer struct {
	addr     string // host:port of the SMTP relay
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

// NewMailer creates a Mailer for the given relay address and sender. auth may
// be nil for relays that accept unauthenticated submission.
func NewMailer(addr, from string, auth smtp.Auth) *Mailer {
	return &Mailer{addr: addr, from: from, auth: auth, sendMail: smtp.SendMail}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(_ context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// DisabledMailer is used when no SMTP relay is configured.
type DisabledMailer struct {
	logger *slog.Logger
}

// NewDisabledMailer creates a DisabledMailer.
func NewDisabledMailer(logger *slog.Logger) *DisabledMailer {
	return &DisabledMailer{logger: logger}
}

// Send logs that mail is not configured and does nothing.
func (m *DisabledMailer) Send(_ context.Context, to, _, _ string) error {
	m.logger.Warn("user notification skipped: smtp relay not configured", "to", to)
	return nil
}
