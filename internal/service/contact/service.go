// Package contact manages the caller's address book.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

type contactRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service provides contact operations.
type Service struct {
	contacts contactRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new contact service.
func NewService(log *slog.Logger, contacts contactRepo) *Service {
	return &Service{
		contacts: contacts,
		log:      log.With("service", "contact"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ContactInput holds contact fields. On update, nil fields are left
// unchanged and empty optional fields are cleared.
type ContactInput struct {
	Name  *string `json:"name"  validate:"omitempty,max=200"`
	Email *string `json:"email" validate:"omitempty,email,max=320"`
	Phone *string `json:"phone" validate:"omitempty,max=50"`
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

// trimmed returns a copy with surrounding whitespace removed. Blank
// optional fields become nil so their format rules are skipped.
func (i ContactInput) trimmed() ContactInput {
	out := ContactInput{Email: trimOrNil(i.Email), Phone: trimOrNil(i.Phone), Notes: trimOrNil(i.Notes)}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		out.Name = &name
	}
	return out
}

func (i ContactInput) validate(create bool) error {
	i = i.trimmed()

	var errs []domain.FieldError
	if err := domain.ValidateStruct(i); err != nil {
		ve, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		errs = ve.Errors
	}
	if (create && i.Name == nil) || (i.Name != nil && strings.TrimSpace(*i.Name) == "") {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListContacts returns the caller's contacts ordered by name.
func (s *Service) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	list, err := s.contacts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return list, nil
}

// GetContact returns a contact owned by the caller.
func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	c, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// CreateContact adds a contact. Name is required.
func (s *Service) CreateContact(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.validate(true); err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.contacts.Create(ctx, &domain.Contact{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(*input.Name),
		Email:     trimOrNil(input.Email),
		Phone:     trimOrNil(input.Phone),
		Notes:     trimOrNil(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.log.InfoContext(ctx, "contact created",
		slog.String("user_id", userID.String()),
		slog.String("contact_id", created.ID.String()),
	)
	return created, nil
}

// UpdateContact edits a contact owned by the caller.
func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, input ContactInput) (*domain.Contact, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.validate(false); err != nil {
		return nil, err
	}

	c, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		c.Email = trimOrNil(input.Email)
	}
	if input.Phone != nil {
		c.Phone = trimOrNil(input.Phone)
	}
	if input.Notes != nil {
		c.Notes = trimOrNil(input.Notes)
	}

	updated, err := s.contacts.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return updated, nil
}

// DeleteContact removes a contact owned by the caller.
func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err := s.contacts.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	s.log.InfoContext(ctx, "contact deleted",
		slog.String("user_id", userID.String()),
		slog.String("contact_id", id.String()),
	)
	return nil
}

func (s *Service) loadOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwner(c.UserID, userID); err != nil {
		return nil, err
	}
	return c, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
