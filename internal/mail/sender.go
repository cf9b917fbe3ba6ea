// Package mail sends outbound email. The Sender interface keeps the identity
// service ignorant of transport: production uses SMTP, development and tests
// use the log sender.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Sender dispatches a password-reset code to a recipient.
type Sender interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPSender constructs an SMTPSender. username may be empty for relays
// that accept unauthenticated submission (e.g. a local postfix).
func NewSMTPSender(host, port, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: host + ":" + port, from: from, auth: auth}
}

func (s *SMTPSender) SendPasswordResetCode(_ context.Context, to, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your password reset code\r\n\r\n"+
			"Your GlobeTrotter password reset code is %s. It expires in 10 minutes.\r\n",
		s.from, to, code,
	)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail.SMTPSender.SendPasswordResetCode: %w", err)
	}
	return nil
}

// LogSender writes the code to the log instead of sending mail.
// For local development only — it defeats the point of email verification.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender constructs a LogSender over the given logger.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendPasswordResetCode(ctx context.Context, to, code string) error {
	s.log.InfoContext(ctx, "password reset code issued", "to", to, "code", code)
	return nil
}
