package mailer

import (
	"context"
	"log/slog"
)

// Mailer is the outbound mail collaborator. A nil error means the message
// was accepted for delivery; no distinction is made between transient and
// permanent failures.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the log instead of sending them. Used in dev
// when no mail credentials are configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.Info("mail (log provider, not delivered)", "to", to, "subject", subject, "body", body)
	return nil
}
