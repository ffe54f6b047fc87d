package domain

import "time"

// FormKind identifies which public form produced a submission.
type FormKind string

const (
	FormContact      FormKind = "contact"
	FormConsultation FormKind = "consultation"
)

// SubmissionStatus records the outcome of relaying a submission by email.
type SubmissionStatus string

const (
	SubmissionDelivered SubmissionStatus = "delivered"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is the archived copy of a relayed form.
type Submission struct {
	Kind        FormKind
	Name        string
	Email       string
	Fields      map[string]string
	Status      SubmissionStatus
	Error       string
	SubmittedAt time.Time
}
