// Package week maps instants to UTC calendar buckets.
//
// All journal bucketing uses one convention: ISO weeks anchored on Monday,
// normalized to midnight UTC. Streak day arithmetic shares the same Day
// functions so an instant never buckets differently across features.
package week

import "time"

// Start returns the Monday 00:00:00 UTC instant of the ISO week containing t.
func Start(t time.Time) time.Time {
	day := DayStart(t)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// End returns the exclusive end of the ISO week containing t: Start(t) + 7 days.
func End(t time.Time) time.Time {
	return Start(t).AddDate(0, 0, 7)
}

// DayStart returns midnight UTC of the calendar day containing t.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the exclusive end of the calendar day containing t.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}
