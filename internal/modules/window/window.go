// Package window decides the next valid subscription start date.
//
// Subscriptions always begin on a Monday. Bookings for the upcoming Monday
// close at Saturday 13:00 local time; after that the offered start date
// advances one week. Every function takes "now" as a parameter so the engine
// stays pure; the caller supplies the real clock.
//
// Weekday arithmetic follows time.Weekday (Sunday = 0). User-facing day
// lists are ordered Monday-first elsewhere; keep the two schemes apart.
package window

import "time"

const (
	cutoffWeekday = time.Saturday
	cutoffHour    = 13
)

// Countdown is the whole-unit time remaining until the booking cutoff.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// State is the booking-window snapshot handed to the orchestrator.
type State struct {
	StartDate time.Time `json:"start_date"`
	// IsNextWeek is true when the nearest upcoming Monday was skipped
	// because the cutoff had already passed.
	IsNextWeek  bool       `json:"is_next_week"`
	UntilCutoff *Countdown `json:"time_until_cutoff,omitempty"`
}

// PastCutoff reports whether the booking window for the nearest cycle has
// closed. Sunday is always past cutoff; Saturday closes strictly after
// 13:00 (13:00:00 through 13:00:59 are still open, 13:01 is not);
// Monday through Friday are always open.
func PastCutoff(now time.Time) bool {
	switch now.Weekday() {
	case time.Sunday:
		return true
	case cutoffWeekday:
		return now.Hour() > cutoffHour || (now.Hour() == cutoffHour && now.Minute() > 0)
	default:
		return false
	}
}

// StartDate returns the next Monday a new subscription may begin on, at
// calendar-day granularity in now's location. The result is always a
// strictly future Monday; if now is a Monday the result is seven days out,
// and a passed cutoff pushes it one further week.
func StartDate(now time.Time) time.Time {
	ahead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	if PastCutoff(now) {
		ahead += 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+ahead, 0, 0, 0, 0, now.Location())
}

// UntilCutoff returns the time remaining until the next Saturday 13:00,
// or nil once the current cycle's window has closed. Components are floored
// to whole units and never negative.
func UntilCutoff(now time.Time) *Countdown {
	if PastCutoff(now) {
		return nil
	}
	ahead := (int(cutoffWeekday) - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d+ahead, cutoffHour, 0, 0, 0, now.Location())

	remaining := cutoff.Sub(now)
	if remaining < 0 {
		// Saturday 13:00:01–13:00:59: still open, nothing left on the clock.
		remaining = 0
	}
	return &Countdown{
		Days:    int(remaining / (24 * time.Hour)),
		Hours:   int(remaining % (24 * time.Hour) / time.Hour),
		Minutes: int(remaining % time.Hour / time.Minute),
	}
}

// Current bundles the full window state for a given instant.
func Current(now time.Time) State {
	return State{
		StartDate:   StartDate(now),
		IsNextWeek:  PastCutoff(now),
		UntilCutoff: UntilCutoff(now),
	}
}
