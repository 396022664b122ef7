package service

import "time"

// WeekBounds returns Monday 00:00 of the week containing now, in loc, and the
// last millisecond of that week.
func WeekBounds(now time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	start = time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}
