package domain

import "time"

// DayStart returns the start of the calendar day containing now in loc, converted to UTC.
func DayStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDayStart returns the start of the following calendar day in loc, converted to UTC.
func NextDayStart(now time.Time, loc *time.Location) time.Time {
	// AddDate handles DST correctly, Add(24h) does not
	next := DayStart(now, loc).In(loc).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc).UTC()
}

// TomorrowAt returns hour:00:00 local time on the calendar day after now in loc, converted to UTC.
func TomorrowAt(now time.Time, loc *time.Location, hour int) time.Time {
	next := NextDayStart(now, loc).In(loc)
	return time.Date(next.Year(), next.Month(), next.Day(), hour, 0, 0, 0, loc).UTC()
}

// ParseTimezone parses an IANA timezone name, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the profile's timezone, or UTC when it cannot be loaded.
func (p *Profile) Location() *time.Location {
	return ParseTimezone(p.Timezone)
}
