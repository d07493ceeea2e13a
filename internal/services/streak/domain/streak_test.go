package domain

import (
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	t.Parallel()

	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		state  State
		smiled bool
		now    time.Time
		want   State
	}{
		{
			name:   "next day extends",
			state:  State{Count: 4, LastDay: feb10},
			smiled: true,
			now:    feb10.AddDate(0, 0, 1).Add(9 * time.Hour),
			want:   State{Count: 5, LastDay: feb10.AddDate(0, 0, 1)},
		},
		{
			name:   "gap resets",
			state:  State{Count: 4, LastDay: feb10},
			smiled: true,
			now:    feb10.AddDate(0, 0, 3),
			want:   State{Count: 1, LastDay: feb10.AddDate(0, 0, 3)},
		},
		{
			name:   "same day keeps count",
			state:  State{Count: 4, LastDay: feb10},
			smiled: true,
			now:    feb10.Add(23 * time.Hour),
			want:   State{Count: 4, LastDay: feb10},
		},
		{
			name:   "no signal leaves state",
			state:  State{Count: 4, LastDay: feb10},
			smiled: false,
			now:    feb10.AddDate(0, 0, 5),
			want:   State{Count: 4, LastDay: feb10},
		},
		{
			name:   "first smile starts at one",
			state:  State{},
			smiled: true,
			now:    feb10.Add(12 * time.Hour),
			want:   State{Count: 1, LastDay: feb10},
		},
		{
			name:   "clock moving backwards resets",
			state:  State{Count: 4, LastDay: feb10},
			smiled: true,
			now:    feb10.AddDate(0, 0, -2),
			want:   State{Count: 1, LastDay: feb10.AddDate(0, 0, -2)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Advance(tc.state, tc.smiled, tc.now)
			if got.Count != tc.want.Count || !got.LastDay.Equal(tc.want.LastDay) {
				t.Fatalf("Advance = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAdvanceUTCBoundary(t *testing.T) {
	t.Parallel()

	// 23:30 UTC and 00:30 UTC the next date are consecutive days even
	// though less than a day apart.
	lastDay := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 11, 0, 30, 0, 0, time.UTC)

	got := Advance(State{Count: 2, LastDay: lastDay}, true, now)
	if got.Count != 3 {
		t.Fatalf("count = %d, want 3", got.Count)
	}
}

func TestAdvanceNormalizesZones(t *testing.T) {
	t.Parallel()

	lastDay := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	// 2026-02-11 20:00 -05:00 is 2026-02-12 01:00 UTC, a two day gap.
	now := time.Date(2026, 2, 11, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))

	got := Advance(State{Count: 4, LastDay: lastDay}, true, now)
	if got.Count != 1 {
		t.Fatalf("count = %d, want reset to 1", got.Count)
	}
	if !got.LastDay.Equal(time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last day = %v", got.LastDay)
	}
}

func TestDayOf(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 2, 10, 23, 59, 59, 999999999, time.UTC)
	want := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	if got := DayOf(at); !got.Equal(want) {
		t.Fatalf("DayOf = %v, want %v", got, want)
	}
}
