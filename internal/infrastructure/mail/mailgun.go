package mail

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

type mailgunMailer struct {
	mg   *mailgun.MailgunImpl
	from string
	log  zerolog.Logger
}

func newMailgunMailer(cfg Config, log zerolog.Logger) *mailgunMailer {
	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(cfg.MailgunAPIBase)
	}
	return &mailgunMailer{mg: mg, from: fromHeader(cfg), log: log}
}

func (m *mailgunMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	message := m.mg.NewMessage(m.from, msg.Subject, msg.Text, msg.To)
	message.SetHtml(msg.HTML)
	if msg.ReplyTo != "" {
		message.SetReplyTo(msg.ReplyTo)
	}

	_, id, err := m.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}

	m.log.Debug().Str("to", msg.To).Str("id", id).Msg("mail queued")
	return nil
}
