// Package domain implements the daily smile streak rules.
package domain

import "time"

// State is a user's current smile streak. A zero State means no streak has
// been recorded yet.
type State struct {
	Count   int
	LastDay time.Time
}

// DayOf returns the UTC midnight of t's calendar day.
func DayOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}

// Advance applies one smile signal to a streak. A false signal leaves the
// state untouched. A qualifying signal on the day after the last smile
// extends the streak; the same day keeps it; any other gap resets it to 1.
// The count never becomes negative and is never reset to zero by a signal.
func Advance(state State, smiled bool, now time.Time) State {
	if !smiled {
		return state
	}
	today := DayOf(now)
	if state.LastDay.IsZero() || state.Count < 1 {
		return State{Count: 1, LastDay: today}
	}
	switch daysBetween(state.LastDay, now) {
	case 0:
		return State{Count: state.Count, LastDay: today}
	case 1:
		return State{Count: state.Count + 1, LastDay: today}
	default:
		// Missed a day, or the clock moved backwards.
		return State{Count: 1, LastDay: today}
	}
}
