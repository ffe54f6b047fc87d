package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

const sendGridHost = "https://api.sendgrid.com"

type sendGridMailer struct {
	apiKey string
	host   string
	from   *sgmail.Email
	log    zerolog.Logger
}

func newSendGridMailer(cfg Config, log zerolog.Logger) *sendGridMailer {
	host := cfg.SendGridHost
	if host == "" {
		host = sendGridHost
	}
	return &sendGridMailer{
		apiKey: cfg.SendGridAPIKey,
		host:   host,
		from:   sgmail.NewEmail(cfg.FromName, cfg.From),
		log:    log,
	}
}

func (m *sendGridMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	message := sgmail.NewSingleEmail(m.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.Text, msg.HTML)
	if msg.ReplyTo != "" {
		message.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}

	req := sendgrid.GetRequest(m.apiKey, "/v3/mail/send", m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.log.Debug().Str("to", msg.To).Int("status", resp.StatusCode).Msg("mail sent")
	return nil
}
