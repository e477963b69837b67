// Package service provides the business logic layer for birthday records,
// guestbooks, and notifications.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/birthdaywisher/wisher-server/internal/domain"
	"github.com/birthdaywisher/wisher-server/internal/errors"
	"github.com/birthdaywisher/wisher-server/internal/id"
	"github.com/birthdaywisher/wisher-server/internal/mailer"
	"github.com/birthdaywisher/wisher-server/internal/normalize"
	"github.com/birthdaywisher/wisher-server/internal/occurrence"
	"github.com/birthdaywisher/wisher-server/internal/search"
	"github.com/birthdaywisher/wisher-server/internal/sse"
	"github.com/birthdaywisher/wisher-server/internal/store"
	"github.com/birthdaywisher/wisher-server/internal/validation"
)

// DefaultTheme is assigned to records created without an explicit theme.
const DefaultTheme = "default"

// Emitter queues events for SSE broadcast.
type Emitter interface {
	Emit(event sse.Event)
}

// NoopEmitter discards events. Used in tests.
type NoopEmitter struct{}

// Emit discards the event.
func (NoopEmitter) Emit(sse.Event) {}

// Autocompleter resolves name prefixes to matching records.
type Autocompleter interface {
	Autocomplete(ctx context.Context, prefix string, limit int) ([]search.Match, error)
}

// BirthdayService orchestrates birthday record operations: creation,
// lookup, occurrence ranking, and the guestbook relay.
type BirthdayService struct {
	store      *store.Store
	names      Autocompleter
	emitter    Emitter
	mail       mailer.Sender
	validator  *validation.Validator
	logger     *slog.Logger
	siteURL    string
	adminEmail string
}

// BirthdayServiceOptions configures a BirthdayService.
type BirthdayServiceOptions struct {
	Store      *store.Store
	Names      Autocompleter
	Emitter    Emitter
	Mail       mailer.Sender
	Validator  *validation.Validator
	Logger     *slog.Logger
	SiteURL    string
	AdminEmail string
}

// NewBirthdayService creates a new birthday service.
func NewBirthdayService(opts BirthdayServiceOptions) *BirthdayService {
	return &BirthdayService{
		store:      opts.Store,
		names:      opts.Names,
		emitter:    opts.Emitter,
		mail:       opts.Mail,
		validator:  opts.Validator,
		logger:     opts.Logger,
		siteURL:    opts.SiteURL,
		adminEmail: opts.AdminEmail,
	}
}

// CreateBirthdayRequest is the payload for creating a birthday record.
// The date must be a date that already happened.
type CreateBirthdayRequest struct {
	Name    string    `json:"name" validate:"required,max=100"`
	Date    time.Time `json:"date" validate:"required,pastdate"`
	Email   string    `json:"email" validate:"omitempty,email"`
	Message string    `json:"message" validate:"max=500"`
	Theme   string    `json:"theme" validate:"max=50"`
}

// Create validates and stores a new birthday record. The record name is
// unique case-insensitively; a duplicate yields a conflict error. On
// success a creation event is broadcast and, when the record carries an
// email address, a welcome email is queued.
func (s *BirthdayService) Create(ctx context.Context, req CreateBirthdayRequest) (*domain.Birthday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Name = normalize.Text(req.Name)
	req.Message = normalize.Text(req.Message)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	theme := normalize.Text(req.Theme)
	if theme == "" {
		theme = DefaultTheme
	}

	now := time.Now()
	birthday := &domain.Birthday{
		ID:        id.MustGenerate("bday"),
		Name:      req.Name,
		Date:      req.Date,
		Email:     normalize.Text(req.Email),
		Message:   req.Message,
		Theme:     theme,
		Guestbook: []domain.GuestbookEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateBirthday(ctx, birthday); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflictf("a birthday for %q already exists", req.Name)
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "create birthday")
	}

	s.emitter.Emit(sse.NewBirthdayCreatedEvent(birthday))

	if welcome, err := mailer.Welcome(birthday, s.siteURL); err != nil {
		s.logger.Warn("failed to build welcome email", "name", birthday.Name, "error", err)
	} else if welcome != nil {
		s.mail.Enqueue(welcome)
	}

	s.logger.Info("birthday created",
		"id", birthday.ID,
		"name", birthday.Name,
		"theme", birthday.Theme,
	)

	return birthday, nil
}

// GetByName retrieves a record by its case-insensitive name.
func (s *BirthdayService) GetByName(ctx context.Context, name string) (*domain.Birthday, error) {
	if normalize.Name(name) == "" {
		return nil, errors.Validation("name is required")
	}

	birthday, err := s.store.GetBirthdayByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("no birthday found for %q", name)
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "get birthday")
	}
	return birthday, nil
}

// Autocomplete returns up to five records whose names start with the given
// prefix. Prefixes shorter than three characters return an empty list.
func (s *BirthdayService) Autocomplete(ctx context.Context, prefix string) ([]search.Match, error) {
	matches, err := s.names.Autocomplete(ctx, prefix, search.DefaultLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "autocomplete")
	}
	return matches, nil
}

// Upcoming partitions all records into those whose birthday is today and
// the rest ordered by next occurrence.
func (s *BirthdayService) Upcoming(ctx context.Context) (occurrence.Ranked, error) {
	records, err := s.store.ListBirthdays(ctx)
	if err != nil {
		return occurrence.Ranked{}, errors.Wrap(err, errors.CodeInternal, "list birthdays")
	}
	return occurrence.Rank(records, time.Now()), nil
}

// PostGuestbookRequest is the payload for posting a guestbook message.
type PostGuestbookRequest struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required,max=500"`
}

// PostGuestbook appends a message to the named record's guestbook and
// relays it to stream subscribers watching that record. The append is
// atomic, so concurrent posts to the same record all survive. Returns the
// updated record with its full guestbook.
func (s *BirthdayService) PostGuestbook(ctx context.Context, req PostGuestbookRequest) (*domain.Birthday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Name = normalize.Text(req.Name)
	req.Text = normalize.Text(req.Text)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry := domain.GuestbookEntry{
		ID:        id.MustGenerate("gb"),
		Text:      req.Text,
		Timestamp: time.Now(),
	}

	updated, err := s.store.AppendGuestbookEntry(ctx, req.Name, entry)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("no birthday found for %q", req.Name)
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "append guestbook entry")
	}

	s.emitter.Emit(sse.NewGuestbookMessageEvent(updated.Name, entry))

	if s.adminEmail != "" {
		s.mail.Enqueue(mailer.GuestbookNotification(s.adminEmail, updated.Name, entry))
	}

	s.logger.Info("guestbook message posted",
		"name", updated.Name,
		"entry_id", entry.ID,
		"guestbook_size", len(updated.Guestbook),
	)

	return updated, nil
}

// GetGuestbook returns the named record's guestbook in insertion order.
func (s *BirthdayService) GetGuestbook(ctx context.Context, name string) ([]domain.GuestbookEntry, error) {
	birthday, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if birthday.Guestbook == nil {
		return []domain.GuestbookEntry{}, nil
	}
	return birthday.Guestbook, nil
}
