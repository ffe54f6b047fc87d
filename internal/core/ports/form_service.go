package ports

import "context"

// ContactInput is a general contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ConsultationInput is a consultation request submission.
type ConsultationInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Website string
	Service string
	Budget  string
	Message string
}

// FormService relays public form submissions to the agency by email.
type FormService interface {
	SubmitContact(ctx context.Context, input ContactInput) error
	SubmitConsultation(ctx context.Context, input ConsultationInput) error
}
