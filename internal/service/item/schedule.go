package item

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// Schedule sets or clears the scheduled time of an item. Setting a time
// commits the item; clearing leaves its layer unchanged.
func (s *Service) Schedule(ctx context.Context, itemID uuid.UUID, at *time.Time) (*domain.Item, error) {
	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("schedule item", err)
	}
	return s.schedule(ctx, item, at)
}

// QuickSchedule schedules an item for 09:00 tomorrow in the owner's timezone.
func (s *Service) QuickSchedule(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, userID, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("quick schedule item", err)
	}

	loc := time.UTC
	profile, err := s.profiles.GetByID(ctx, userID)
	switch {
	case err == nil:
		loc = profile.Location()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, wrap("quick schedule item", err)
	}

	at := domain.TomorrowAt(s.now(), loc, QuickScheduleHour)
	return s.schedule(ctx, item, &at)
}

func (s *Service) schedule(ctx context.Context, item *domain.Item, at *time.Time) (*domain.Item, error) {
	if at == nil {
		if item.ScheduledAt == nil {
			return item, nil
		}
		item.ScheduledAt = nil
		updated, err := s.save(ctx, item, "item unscheduled")
		if err != nil {
			return nil, wrap("schedule item", err)
		}
		return updated, nil
	}

	t := at.UTC()
	item.ScheduledAt = &t
	item.Layer = domain.LayerCommit

	updated, err := s.save(ctx, item, "item scheduled", slog.Time("scheduled_at", t))
	if err != nil {
		return nil, wrap("schedule item", err)
	}
	return updated, nil
}
