package item

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// UpdateItem edits the title, notes or attachments of an item.
func (s *Service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*domain.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("update item", err)
	}

	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Notes != nil {
		item.Notes = trimOrNil(input.Notes)
	}
	if input.Attachments != nil {
		item.Attachments = s.buildAttachments(item.Attachments, *input.Attachments)
	}

	updated, err := s.save(ctx, item, "item updated")
	if err != nil {
		return nil, wrap("update item", err)
	}
	return updated, nil
}

// buildAttachments keeps the creation time of attachments that already
// existed and stamps new ones.
func (s *Service) buildAttachments(existing []domain.Attachment, list []AttachmentInput) []domain.Attachment {
	known := make(map[uuid.UUID]domain.Attachment, len(existing))
	for _, a := range existing {
		known[a.ID] = a
	}

	now := s.now()
	out := make([]domain.Attachment, 0, len(list))
	for _, in := range list {
		a := domain.Attachment{
			ID:        in.ID,
			Kind:      in.Kind,
			URL:       strings.TrimSpace(in.URL),
			Filename:  strings.TrimSpace(in.Filename),
			Size:      in.Size,
			Duration:  in.Duration,
			CreatedAt: now,
		}
		if prev, ok := known[in.ID]; ok && in.ID != uuid.Nil {
			a.CreatedAt = prev.CreatedAt
		}
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		out = append(out, a)
	}
	return out
}
