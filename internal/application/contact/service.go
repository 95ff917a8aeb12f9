package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contact-form-api/internal/domain"
	"github.com/contact-form-api/internal/infrastructure/smtp"
	"github.com/contact-form-api/internal/pkg/id"
	pkgtoken "github.com/contact-form-api/internal/pkg/token"
	"github.com/contact-form-api/internal/pkg/validate"
)

// Status texts returned to the frontend.
const (
	StatusCheckEmail  = "Thanks for reaching out! Please check your email to verify your address."
	StatusMessageSent = "Message sent successfully."
)

// Submitter attribute names passed to SubmitterStore.Update.
const (
	fieldFirstName         = "first_name"
	fieldLastName          = "last_name"
	fieldPhone             = "phone"
	fieldVerificationToken = "verification_token"
	fieldTokenExpiresAt    = "token_expires_at"
)

// SubmitterStore is the minimal interface the service requires from the
// submitters table.
type SubmitterStore interface {
	// Create must fail with domain.ErrConflict when the email already exists.
	Create(ctx context.Context, s *domain.Submitter) error
	GetByEmail(ctx context.Context, email string) (*domain.Submitter, error)
	GetByToken(ctx context.Context, token string) (*domain.Submitter, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
	MarkVerified(ctx context.Context, email string) error
}

// MessageStore is the minimal interface the service requires from the
// messages table.
type MessageStore interface {
	Put(ctx context.Context, m *domain.Message) error
	ListBySubmitter(ctx context.Context, submitterID string) ([]domain.Message, error)
}

type Service interface {
	// Submit records a message and returns the status text for the caller.
	Submit(ctx context.Context, req domain.SubmitRequest) (string, error)
	// Verify consumes a verification token and flushes the submitter's
	// pending messages to the admin.
	Verify(ctx context.Context, token string) error
}

type ServiceDeps struct {
	SubmitterRepo   SubmitterStore
	MessageRepo     MessageStore
	Mailer          smtp.Mailer
	AdminEmail      string
	FrontendBaseURL string
	TokenTTL        time.Duration
}

type service struct {
	submitterRepo   SubmitterStore
	messageRepo     MessageStore
	mailer          smtp.Mailer
	adminEmail      string
	frontendBaseURL string
	tokenTTL        time.Duration
}

func NewService(d ServiceDeps) Service {
	return &service{
		submitterRepo:   d.SubmitterRepo,
		messageRepo:     d.MessageRepo,
		mailer:          d.Mailer,
		adminEmail:      d.AdminEmail,
		frontendBaseURL: d.FrontendBaseURL,
		tokenTTL:        d.TokenTTL,
	}
}

func (s *service) Submit(ctx context.Context, req domain.SubmitRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	sub, err := s.submitterRepo.GetByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// First submission from this email. Two concurrent first submissions
		// can both reach Create; the loser observes domain.ErrConflict from
		// the store's condition check and surfaces it as an internal error.
		if sub, err = s.createSubmitter(ctx, req); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	case !sub.Verified:
		// Repeated unverified submission: refresh the contact fields and
		// rotate the token. Only the newest token remains valid.
		if err = s.reissueToken(ctx, sub, req); err != nil {
			return "", err
		}
	}

	msg := &domain.Message{
		MessageID:   id.New(),
		SubmitterID: sub.SubmitterID,
		Body:        req.Message,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messageRepo.Put(ctx, msg); err != nil {
		return "", err
	}

	// A persisted message with a failed send is an accepted inconsistency;
	// there is no rollback.
	if sub.Verified {
		if err := s.sendAdminNotification(sub, msg.Body); err != nil {
			return "", err
		}
		return StatusMessageSent, nil
	}
	if err := s.sendVerificationEmail(sub); err != nil {
		return "", err
	}
	return StatusCheckEmail, nil
}

func (s *service) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token is required: %w", domain.ErrBadRequest)
	}

	sub, err := s.submitterRepo.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		// Wrong, rotated-away, or already-consumed token.
		return fmt.Errorf("unknown token: %w", domain.ErrInvalidToken)
	}
	if err != nil {
		return err
	}
	if sub.TokenExpiresAt == nil || *sub.TokenExpiresAt < time.Now().Unix() {
		return fmt.Errorf("token expired: %w", domain.ErrInvalidToken)
	}

	// Consume the token before flushing. A mail failure below leaves a
	// verified submitter with partially delivered notifications; that is
	// logged upstream, never retried.
	if err := s.submitterRepo.MarkVerified(ctx, sub.Email); err != nil {
		return err
	}

	msgs, err := s.messageRepo.ListBySubmitter(ctx, sub.SubmitterID)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := s.sendAdminNotification(sub, m.Body); err != nil {
			return fmt.Errorf("notify admin for message %s: %w", m.MessageID, err)
		}
	}
	return nil
}

func (s *service) createSubmitter(ctx context.Context, req domain.SubmitRequest) (*domain.Submitter, error) {
	tok, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return nil, err
	}
	exp := time.Now().Add(s.tokenTTL).Unix()
	now := time.Now().UTC()
	sub := &domain.Submitter{
		Email:             req.Email,
		SubmitterID:       id.New(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Verified:          false,
		VerificationToken: &tok,
		TokenExpiresAt:    &exp,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.submitterRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) reissueToken(ctx context.Context, sub *domain.Submitter, req domain.SubmitRequest) error {
	tok, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return err
	}
	exp := time.Now().Add(s.tokenTTL).Unix()
	err = s.submitterRepo.Update(ctx, sub.Email, map[string]interface{}{
		fieldFirstName:         req.FirstName,
		fieldLastName:          req.LastName,
		fieldPhone:             req.Phone,
		fieldVerificationToken: tok,
		fieldTokenExpiresAt:    exp,
	})
	if err != nil {
		return err
	}
	sub.FirstName = req.FirstName
	sub.LastName = req.LastName
	sub.Phone = req.Phone
	sub.VerificationToken = &tok
	sub.TokenExpiresAt = &exp
	return nil
}

func (s *service) sendVerificationEmail(sub *domain.Submitter) error {
	body, err := renderVerificationEmail(verificationVars{
		FirstName: sub.FirstName,
		Link:      fmt.Sprintf("%s/verify-email?token=%s", s.frontendBaseURL, *sub.VerificationToken),
		TTLHours:  int(s.tokenTTL.Hours()),
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(smtp.Email{
		To:      sub.Email,
		Subject: "Please verify your email address",
		Body:    body,
	})
}

func (s *service) sendAdminNotification(sub *domain.Submitter, messageBody string) error {
	phone := "Not provided"
	if sub.Phone != nil && *sub.Phone != "" {
		phone = *sub.Phone
	}
	body, err := renderAdminNotification(notificationVars{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Email:     sub.Email,
		Phone:     phone,
		Message:   messageBody,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(smtp.Email{
		To:      s.adminEmail,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("New contact form message from %s %s", sub.FirstName, sub.LastName),
		Body:    body,
	})
}
