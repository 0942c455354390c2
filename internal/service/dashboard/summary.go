package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// Summary is the set of counters shown on the dashboard.
type Summary struct {
	InboxCount          int
	ProcessingCount     int
	TodayCount          int
	CompletedTodayCount int
	TotalItems          int
	TotalCompleted      int
	ByDestination       map[uuid.UUID]int
	Uncategorized       int
}

// Summarize counts items relative to the calendar day of now in loc.
// Open items are those not completed; only open items are bucketed by
// destination.
func Summarize(items []domain.Item, now time.Time, loc *time.Location) Summary {
	dayStart := domain.DayStart(now, loc)
	nextDay := domain.NextDayStart(now, loc)

	s := Summary{
		TotalItems:    len(items),
		ByDestination: make(map[uuid.UUID]int),
	}

	for i := range items {
		it := &items[i]

		if it.IsCompleted {
			s.TotalCompleted++
			if it.CompletedWithin(dayStart, nextDay) {
				s.CompletedTodayCount++
			}
			continue
		}

		switch it.Layer {
		case domain.LayerCapture:
			s.InboxCount++
		case domain.LayerProcess:
			s.ProcessingCount++
		}
		if it.ScheduledWithin(dayStart, nextDay) {
			s.TodayCount++
		}
		if it.DestinationID == nil {
			s.Uncategorized++
		} else {
			s.ByDestination[*it.DestinationID]++
		}
	}

	return s
}

// Greeting returns a salutation for the local time of now in loc.
func Greeting(now time.Time, loc *time.Location) string {
	switch h := now.In(loc).Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
