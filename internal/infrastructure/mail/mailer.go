// Package mail delivers outbound notifications through one of the supported
// providers.
package mail

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

const (
	ProviderSendGrid = "sendgrid"
	ProviderMailgun  = "mailgun"
	ProviderSMTP     = "smtp"
	ProviderLog      = "log"
)

// Config selects and configures the provider.
type Config struct {
	Provider string
	From     string
	FromName string

	SendGridAPIKey string
	SendGridHost   string

	MailgunDomain  string
	MailgunAPIKey  string
	MailgunAPIBase string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// New returns the Mailer for cfg.Provider.
func New(cfg Config, log zerolog.Logger) (ports.Mailer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderLog
	}
	log = log.With().Str("component", "mailer").Str("provider", provider).Logger()

	if provider != ProviderLog {
		if _, err := mail.ParseAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("mail: invalid from address %q: %w", cfg.From, err)
		}
	}

	switch provider {
	case ProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, errors.New("mail: sendgrid api key is required")
		}
		return newSendGridMailer(cfg, log), nil
	case ProviderMailgun:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, errors.New("mail: mailgun domain and api key are required")
		}
		return newMailgunMailer(cfg, log), nil
	case ProviderSMTP:
		if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
			return nil, errors.New("mail: smtp host and port are required")
		}
		return newSMTPMailer(cfg, log), nil
	case ProviderLog:
		return newLogMailer(log), nil
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", provider)
	}
}

func fromHeader(cfg Config) string {
	if cfg.FromName == "" {
		return cfg.From
	}
	return (&mail.Address{Name: cfg.FromName, Address: cfg.From}).String()
}
