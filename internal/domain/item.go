package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttachmentsPerItem bounds the attachment list of a single item.
const MaxAttachmentsPerItem = 20

// Item is a captured unit of work owned by a single user.
type Item struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Notes         *string
	Layer         Layer
	IsCompleted   bool
	CompletedAt   *time.Time
	ScheduledAt   *time.Time
	DestinationID *uuid.UUID
	Attachments   []Attachment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewItem returns an item in the capture layer with no destination and no schedule.
func NewItem(userID uuid.UUID, title string, notes *string, now time.Time) Item {
	return Item{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Notes:       notes,
		Layer:       LayerCapture,
		Attachments: []Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsUncategorized reports whether the item has no destination.
func (i *Item) IsUncategorized() bool {
	return i.DestinationID == nil
}

// InDestination reports whether the item is currently routed to id.
func (i *Item) InDestination(id uuid.UUID) bool {
	return i.DestinationID != nil && *i.DestinationID == id
}

// SetCompleted keeps CompletedAt consistent with IsCompleted.
func (i *Item) SetCompleted(done bool, now time.Time) {
	i.IsCompleted = done
	if done {
		t := now
		i.CompletedAt = &t
		return
	}
	i.CompletedAt = nil
}

// ScheduledWithin reports whether ScheduledAt falls in [from, to).
func (i *Item) ScheduledWithin(from, to time.Time) bool {
	if i.ScheduledAt == nil {
		return false
	}
	return !i.ScheduledAt.Before(from) && i.ScheduledAt.Before(to)
}

// CompletedWithin reports whether CompletedAt falls in [from, to).
func (i *Item) CompletedWithin(from, to time.Time) bool {
	if i.CompletedAt == nil {
		return false
	}
	return !i.CompletedAt.Before(from) && i.CompletedAt.Before(to)
}

// Attachment is a file attached to an item.
type Attachment struct {
	ID        uuid.UUID      `json:"id"`
	Kind      AttachmentKind `json:"type"`
	URL       string         `json:"url"`
	Filename  string         `json:"filename"`
	Size      int64          `json:"size"`
	Duration  *float64       `json:"duration,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	Layer          *Layer
	DestinationID  *uuid.UUID
	Uncategorized  bool
	IsCompleted    *bool
	ScheduledFrom  *time.Time
	ScheduledUntil *time.Time
	Limit          int
	Offset         int
}
