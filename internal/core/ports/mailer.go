package ports

import "context"

// MailMessage is a single outbound email.
type MailMessage struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers email through an external provider.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
