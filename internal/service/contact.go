package service

import (
	"context"
	"log/slog"

	"github.com/birthdaywisher/wisher-server/internal/domain"
	"github.com/birthdaywisher/wisher-server/internal/mailer"
	"github.com/birthdaywisher/wisher-server/internal/normalize"
	"github.com/birthdaywisher/wisher-server/internal/validation"
)

// ContactService relays contact-form submissions to the operator address.
// Submissions are never persisted.
type ContactService struct {
	mail       mailer.Sender
	validator  *validation.Validator
	logger     *slog.Logger
	adminEmail string
}

// NewContactService creates a new contact service.
func NewContactService(mail mailer.Sender, validator *validation.Validator, logger *slog.Logger, adminEmail string) *ContactService {
	return &ContactService{
		mail:       mail,
		validator:  validator,
		logger:     logger,
		adminEmail: adminEmail,
	}
}

// SubmitContactRequest is the payload for a contact-form submission.
type SubmitContactRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

// Submit validates a contact submission and queues the operator
// notification. Delivery is fire-and-forget; the caller learns only
// whether the submission was accepted.
func (s *ContactService) Submit(ctx context.Context, req SubmitContactRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req.Email = normalize.Text(req.Email)
	req.Message = normalize.Text(req.Message)
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	if s.adminEmail == "" {
		s.logger.Warn("contact message received but no admin email configured",
			"from", req.Email)
		return nil
	}

	s.mail.Enqueue(mailer.ContactNotification(s.adminEmail, domain.ContactMessage{
		Email:   req.Email,
		Message: req.Message,
	}))

	s.logger.Info("contact message relayed", "from", req.Email)
	return nil
}
