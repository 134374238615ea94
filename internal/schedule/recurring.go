// Package schedule decides what happens to a reminder after a
// successful dispatch: terminal sent, or rolled forward one day.
package schedule

import (
	"time"

	"github.com/goalpulse/reminder-service/internal/model"
)

// occurrenceStep is one day between recurring occurrences.
const occurrenceStep = 24 * time.Hour

// Advance describes the state a reminder moves to after a successful
// dispatch.
type Advance struct {
	// Done is true when the reminder is finished and must be marked
	// sent; the remaining fields are then meaningless.
	Done bool

	CurrentDay int
	NextSendAt time.Time
}

// Next computes the post-dispatch transition for a reminder.
//
// A recurring reminder advances while current_day is below the
// configured duration AND the next occurrence still falls within
// end_date. end_date is the authoritative ceiling: it is checked
// independently of the current_day bookkeeping so that drift in either
// field cannot push occurrences past the window the user chose.
func Next(rem model.Reminder) Advance {
	if !rem.IsRecurring {
		return Advance{Done: true}
	}

	if rem.CurrentDay >= rem.RecurringDuration {
		return Advance{Done: true}
	}

	next := rem.SendAt.Add(occurrenceStep)
	if rem.EndDate != nil && next.After(*rem.EndDate) {
		return Advance{Done: true}
	}

	return Advance{
		CurrentDay: rem.CurrentDay + 1,
		NextSendAt: next,
	}
}
