package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// SubmissionDeduper abstracts the recently-relayed submission store (Redis).
// Claim atomically reserves a fingerprint and reports false when it is
// already held; Release gives it back after a failed relay.
type SubmissionDeduper interface {
	Claim(ctx context.Context, fingerprint string) (bool, error)
	Release(ctx context.Context, fingerprint string) error
}

// SubmissionArchive records relayed submissions (MongoDB).
type SubmissionArchive interface {
	Insert(ctx context.Context, s *domain.Submission) error
}

// FormOptions carries the agency details used in outbound mail.
type FormOptions struct {
	OperatorAddress string
	SiteName        string
	SiteURL         string
	ContactPhone    string
}

type formService struct {
	mailer  ports.Mailer
	dedup   SubmissionDeduper // optional
	archive SubmissionArchive // optional
	opts    FormOptions
	log     zerolog.Logger
	now     func() time.Time
}

// NewFormService returns a FormService. dedup and archive may be nil.
func NewFormService(
	mailer ports.Mailer,
	dedup SubmissionDeduper,
	archive SubmissionArchive,
	opts FormOptions,
	log zerolog.Logger,
) ports.FormService {
	return &formService{
		mailer:  mailer,
		dedup:   dedup,
		archive: archive,
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

func (s *formService) SubmitContact(ctx context.Context, in ports.ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return domain.NewValidationError("name, email, and message are required")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = "New Contact Form Submission"
	}

	view := contactView{
		Site:    s.site(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   orDefault(in.Phone, "Not provided"),
		Subject: orDefault(in.Subject, "Not specified"),
		Message: in.Message,
	}

	return s.relay(ctx, relayRequest{
		kind:  domain.FormContact,
		name:  in.Name,
		email: in.Email,
		fields: map[string]string{
			"phone":   in.Phone,
			"subject": in.Subject,
			"message": in.Message,
		},
		fingerprint:   fingerprint(domain.FormContact, in.Email, in.Name, in.Subject, in.Message),
		noticeSubject: fmt.Sprintf("[%s Contact] %s", s.opts.SiteName, subject),
		noticeTmpl:    "contact_notice",
		ackSubject:    fmt.Sprintf("Thank you for contacting %s!", s.opts.SiteName),
		ackTmpl:       "contact_ack",
		view:          view,
	})
}

func (s *formService) SubmitConsultation(ctx context.Context, in ports.ConsultationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return domain.NewValidationError("name and email are required")
	}

	view := consultationView{
		Site:    s.site(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   orDefault(in.Phone, "Not provided"),
		Company: orDefault(in.Company, "Not provided"),
		Website: orDefault(in.Website, "Not provided"),
		Service: orDefault(in.Service, "Not specified"),
		Budget:  orDefault(in.Budget, "Not specified"),
		Message: orDefault(in.Message, "No additional message"),
	}

	return s.relay(ctx, relayRequest{
		kind:  domain.FormConsultation,
		name:  in.Name,
		email: in.Email,
		fields: map[string]string{
			"phone":   in.Phone,
			"company": in.Company,
			"website": in.Website,
			"service": in.Service,
			"budget":  in.Budget,
			"message": in.Message,
		},
		fingerprint:   fingerprint(domain.FormConsultation, in.Email, in.Name, in.Company, in.Service, in.Message),
		noticeSubject: fmt.Sprintf("[%s Consultation] New Request from %s", s.opts.SiteName, in.Name),
		noticeTmpl:    "consultation_notice",
		ackSubject:    fmt.Sprintf("Your Consultation Request - %s", s.opts.SiteName),
		ackTmpl:       "consultation_ack",
		view:          view,
	})
}

type relayRequest struct {
	kind          domain.FormKind
	name          string
	email         string
	fields        map[string]string
	fingerprint   string
	noticeSubject string
	noticeTmpl    string
	ackSubject    string
	ackTmpl       string
	view          any
}

// relay sends the operator notice and the acknowledgment. It does not retry;
// any mailer failure is reported as domain.ErrDeliveryFailure.
func (s *formService) relay(ctx context.Context, r relayRequest) error {
	log := s.log.With().Str("form", string(r.kind)).Str("email", r.email).Logger()

	// 1. Render both messages before sending anything.
	notice, err := render(r.noticeTmpl, r.view)
	if err != nil {
		return fmt.Errorf("relay %s: %w", r.kind, err)
	}
	ack, err := render(r.ackTmpl, r.view)
	if err != nil {
		return fmt.Errorf("relay %s: %w", r.kind, err)
	}

	// 2. Claim the fingerprint so an identical form, delivered or in flight,
	// is not mailed twice.
	claimed := false
	if s.dedup != nil {
		ok, err := s.dedup.Claim(ctx, r.fingerprint)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("dedup claim failed, relaying anyway")
		case !ok:
			log.Debug().Msg("duplicate submission skipped")
			return nil
		default:
			claimed = true
		}
	}

	// 3. Operator notice, then acknowledgment to the submitter.
	sendErr := s.mailer.Send(ctx, ports.MailMessage{
		To:      s.opts.OperatorAddress,
		ReplyTo: r.email,
		Subject: r.noticeSubject,
		HTML:    notice,
	})
	if sendErr == nil {
		sendErr = s.mailer.Send(ctx, ports.MailMessage{
			To:      r.email,
			Subject: r.ackSubject,
			HTML:    ack,
		})
	}

	// 4. Archive the outcome (non-fatal).
	s.archiveSubmission(ctx, log, r, sendErr)

	if sendErr != nil {
		if claimed {
			if err := s.dedup.Release(context.WithoutCancel(ctx), r.fingerprint); err != nil {
				log.Warn().Err(err).Msg("failed to release dedup claim")
			}
		}
		log.Error().Err(sendErr).Msg("form relay failed")
		return fmt.Errorf("relay %s: %w: %w", r.kind, domain.ErrDeliveryFailure, sendErr)
	}

	log.Info().Msg("form relayed")
	return nil
}

func (s *formService) archiveSubmission(ctx context.Context, log zerolog.Logger, r relayRequest, sendErr error) {
	if s.archive == nil {
		return
	}

	sub := &domain.Submission{
		Kind:        r.kind,
		Name:        r.name,
		Email:       r.email,
		Fields:      r.fields,
		Status:      domain.SubmissionDelivered,
		SubmittedAt: s.now().UTC(),
	}
	if sendErr != nil {
		sub.Status = domain.SubmissionFailed
		sub.Error = sendErr.Error()
	}

	if err := s.archive.Insert(ctx, sub); err != nil {
		log.Warn().Err(err).Msg("failed to archive submission")
	}
}

func (s *formService) site() siteView {
	return siteView{Name: s.opts.SiteName, URL: s.opts.SiteURL, Phone: s.opts.ContactPhone}
}

// fingerprint identifies a submission by its kind, normalised sender address
// and content.
func fingerprint(kind domain.FormKind, email string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(email)))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(strings.TrimSpace(p)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
