package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// logMailer writes messages to the log instead of sending them. Used in
// development when no provider is configured.
type logMailer struct {
	log zerolog.Logger
}

func newLogMailer(log zerolog.Logger) *logMailer {
	return &logMailer{log: log}
}

func (m *logMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("mail not sent (log provider)")
	return nil
}
