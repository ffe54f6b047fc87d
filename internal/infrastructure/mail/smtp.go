package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/ports"
)

type smtpMailer struct {
	host     string
	addr     string
	username string
	password string
	from     string
	header   string
	log      zerolog.Logger
	now      func() time.Time
}

func newSMTPMailer(cfg Config, log zerolog.Logger) *smtpMailer {
	return &smtpMailer{
		host:     cfg.SMTPHost,
		addr:     net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.From,
		header:   fromHeader(cfg),
		log:      log,
		now:      time.Now,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(m.build(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}

	m.log.Debug().Str("to", msg.To).Msg("mail sent")
	return c.Quit()
}

// build renders msg as an RFC 5322 message with an HTML body.
func (m *smtpMailer) build(msg ports.MailMessage) []byte {
	var b bytes.Buffer
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	writeHeader("From", m.header)
	writeHeader("To", msg.To)
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", msg.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader("Date", m.now().Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="utf-8"`)
	writeHeader("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.Bytes()
}
