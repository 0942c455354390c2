package domain

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 15, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		tz       string
		wantHour int
		wantDay  int
	}{
		{"UTC", "UTC", 0, 15},
		{"America/New_York", "America/New_York", 5, 15}, // EST is UTC-5
		{"Asia/Tokyo", "Asia/Tokyo", 15, 14},            // JST midnight is 15:00 UTC of the previous day
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DayStart(now, ParseTimezone(tt.tz))
			if got.Hour() != tt.wantHour || got.Day() != tt.wantDay || got.Minute() != 0 {
				t.Errorf("DayStart() = %v, want day %d hour %d", got, tt.wantDay, tt.wantHour)
			}
		})
	}
}

func TestNextDayStart_DST(t *testing.T) {
	t.Parallel()

	loc := ParseTimezone("America/New_York")
	// 2024-03-10 is a 23-hour day in New York.
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)

	if diff := NextDayStart(now, loc).Sub(DayStart(now, loc)); diff != 23*time.Hour {
		t.Errorf("day length = %v, want 23h", diff)
	}
}

func TestTomorrowAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		tz   string
		want time.Time
	}{
		{
			name: "UTC afternoon",
			now:  time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC),
			tz:   "UTC",
			want: time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "late evening stays on next local day",
			now:  time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC),
			tz:   "UTC",
			want: time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "local day differs from UTC day",
			now:  time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC), // 2025-01-11 05:00 in Tokyo
			tz:   "Asia/Tokyo",
			want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), // 2025-01-12 09:00 JST
		},
		{
			name: "month rollover",
			now:  time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
			tz:   "UTC",
			want: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TomorrowAt(tt.now, ParseTimezone(tt.tz), 9)
			if !got.Equal(tt.want) {
				t.Errorf("TomorrowAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTimezone(t *testing.T) {
	t.Parallel()

	if loc := ParseTimezone("Invalid/Timezone"); loc != time.UTC {
		t.Errorf("invalid tz: got %v, want UTC", loc)
	}
	if loc := ParseTimezone("Europe/Berlin"); loc.String() != "Europe/Berlin" {
		t.Errorf("valid tz: got %v", loc)
	}

	p := Profile{Timezone: "nowhere"}
	if p.Location() != time.UTC {
		t.Error("profile with bad timezone should fall back to UTC")
	}
}
