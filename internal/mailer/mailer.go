// Package mailer delivers transactional email for account verification.
package mailer

import (
	"context"
	"fmt"

	"gamehaven/internal/config"

	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, username, code string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds a Mailer from config. Returns a Noop mailer when no
// SMTP host is configured so development signups still work.
func NewSMTPMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return Noop{}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

// SendVerificationCode emails a 6-digit verification code to the user.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, username, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Verify your GameHaven account")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nYour GameHaven verification code is: %s\n\nThe code expires in 24 hours. If you did not sign up, you can ignore this email.\n",
		username, code,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// Noop discards all mail. Used in development and tests.
type Noop struct{}

// SendVerificationCode implements Mailer by doing nothing.
func (Noop) SendVerificationCode(_ context.Context, _, _, _ string) error {
	return nil
}
