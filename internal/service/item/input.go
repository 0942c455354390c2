package item

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

const (
	maxTitleLength = 500
	maxNotesLength = 10000
)

// CreateItemInput holds the parameters for capturing an item.
type CreateItemInput struct {
	Title string
	Notes *string
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTitle(errs, i.Title)
	errs = validateNotes(errs, i.Notes)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateItemInput holds a partial update. Nil fields are left unchanged; an
// empty Notes string clears the notes; a non-nil Attachments replaces the list.
type UpdateItemInput struct {
	Title       *string
	Notes       *string
	Attachments *[]AttachmentInput
}

// AttachmentInput describes an attachment supplied by the client.
type AttachmentInput struct {
	ID       uuid.UUID
	Kind     domain.AttachmentKind
	URL      string
	Filename string
	Size     int64
	Duration *float64
}

// Validate checks all fields and collects all errors.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil {
		errs = validateTitle(errs, *i.Title)
	}
	errs = validateNotes(errs, i.Notes)

	if i.Attachments != nil {
		list := *i.Attachments
		if len(list) > domain.MaxAttachmentsPerItem {
			errs = append(errs, domain.FieldError{Field: "attachments", Message: "max 20 attachments"})
		}
		for _, a := range list {
			switch {
			case !a.Kind.IsValid():
				errs = append(errs, domain.FieldError{Field: "attachments.type", Message: "must be image or audio"})
			case strings.TrimSpace(a.URL) == "":
				errs = append(errs, domain.FieldError{Field: "attachments.url", Message: "required"})
			case a.Size < 0:
				errs = append(errs, domain.FieldError{Field: "attachments.size", Message: "must be non-negative"})
			case a.Duration != nil && a.Kind != domain.AttachmentAudio:
				errs = append(errs, domain.FieldError{Field: "attachments.duration", Message: "only audio has a duration"})
			case a.Duration != nil && *a.Duration < 0:
				errs = append(errs, domain.FieldError{Field: "attachments.duration", Message: "must be non-negative"})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListItemsInput filters and paginates an item listing.
type ListItemsInput struct {
	Layer          *domain.Layer
	DestinationID  *uuid.UUID
	Uncategorized  bool
	IsCompleted    *bool
	ScheduledFrom  *time.Time
	ScheduledUntil *time.Time
	Limit          int
	Offset         int
}

// Validate checks all fields against maxLimit and collects all errors.
func (i ListItemsInput) Validate(maxLimit int) error {
	var errs []domain.FieldError
	if i.Layer != nil && !i.Layer.IsValid() {
		errs = append(errs, domain.FieldError{Field: "layer", Message: "must be capture, process or commit"})
	}
	if i.Uncategorized && i.DestinationID != nil {
		errs = append(errs, domain.FieldError{Field: "destination_id", Message: "cannot combine with uncategorized"})
	}
	if i.ScheduledFrom != nil && i.ScheduledUntil != nil && !i.ScheduledFrom.Before(*i.ScheduledUntil) {
		errs = append(errs, domain.FieldError{Field: "scheduled_until", Message: "must be after scheduled_from"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "too large"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
	}
	return errs
}

func validateNotes(errs []domain.FieldError, notes *string) []domain.FieldError {
	if notes != nil && utf8.RuneCountInString(strings.TrimSpace(*notes)) > maxNotesLength {
		return append(errs, domain.FieldError{Field: "notes", Message: "max 10000 characters"})
	}
	return errs
}
