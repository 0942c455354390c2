package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/catalog"
	"github.com/offmind/offmind-backend/internal/domain"
)

type itemResponse struct {
	ID            uuid.UUID            `json:"id"`
	Title         string               `json:"title"`
	Notes         *string              `json:"notes"`
	Layer         domain.Layer         `json:"layer"`
	IsCompleted   bool                 `json:"is_completed"`
	CompletedAt   *time.Time           `json:"completed_at"`
	ScheduledAt   *time.Time           `json:"scheduled_at"`
	DestinationID *uuid.UUID           `json:"destination_id"`
	Destination   *destinationResponse `json:"destination,omitempty"`
	Attachments   []domain.Attachment  `json:"attachments"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func toItemResponse(it *domain.Item) itemResponse {
	attachments := it.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return itemResponse{
		ID:            it.ID,
		Title:         it.Title,
		Notes:         it.Notes,
		Layer:         it.Layer,
		IsCompleted:   it.IsCompleted,
		CompletedAt:   it.CompletedAt,
		ScheduledAt:   it.ScheduledAt,
		DestinationID: it.DestinationID,
		Attachments:   attachments,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

type destinationResponse struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Icon        catalog.Icon   `json:"icon"`
	Color       *catalog.Color `json:"color"`
	Description *string        `json:"description"`
	SortOrder   int            `json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
}

// toDestinationResponse resolves catalog keys into their style tokens. An
// unknown icon renders as the fallback; an unknown color as none.
func toDestinationResponse(d *domain.Destination) destinationResponse {
	resp := destinationResponse{
		ID:          d.ID,
		Slug:        d.Slug,
		Name:        d.Name,
		Icon:        catalog.IconOrFallback(d.Icon),
		Description: d.Description,
		SortOrder:   d.SortOrder,
		CreatedAt:   d.CreatedAt,
	}
	if d.Color != nil {
		if c, ok := catalog.ResolveColor(*d.Color); ok {
			resp.Color = &c
		}
	}
	return resp
}

type contactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type profileResponse struct {
	ID          uuid.UUID          `json:"id"`
	Email       string             `json:"email"`
	DisplayName *string            `json:"display_name"`
	Timezone    string             `json:"timezone"`
	Preferences domain.Preferences `json:"preferences"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Timezone:    p.Timezone,
		Preferences: p.Preferences,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func mapSlice[T, R any](in []T, fn func(*T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return out
}
