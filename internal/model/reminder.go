package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a reminder.
//
// Allowed transitions:
//
//	pending    -> processing (claimed by a sweep)
//	processing -> sent       (delivered, non-recurring or last occurrence)
//	processing -> pending    (released for retry, or advanced to the next occurrence)
//	processing -> failed     (retries exhausted)
//	pending    -> failed     (retries exhausted)
//	pending    -> cancelled  (cancelled by the user)
//
// sent, failed and cancelled are terminal; terminal records are kept
// for inspection, never deleted.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether s is a state the sweep must never touch again.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed || s == StatusCancelled
}

// Channel selects the delivery mechanism for a reminder.
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
)

// MaxRetries is the default number of delivery attempts before a
// reminder is marked failed for good; the configured backoff policy
// may override it.
const MaxRetries = 3

// Reminder is a scheduled notification tied to a goal and a user.
//
// Recipient fields (UserEmail, UserName) are denormalized onto the
// record at creation time; dispatch never re-joins against a live
// user record.
type Reminder struct {
	ID          uuid.UUID `json:"id"`
	GoalID      uuid.UUID `json:"goal_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserEmail   string    `json:"user_email"`
	UserName    string    `json:"user_name,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Channel     Channel   `json:"channel"`

	SendAt     time.Time  `json:"send_at"`
	Status     Status     `json:"status"`
	RetryCount int        `json:"retry_count"`
	NextRetry  *time.Time `json:"next_retry,omitempty"`

	IsRecurring       bool       `json:"is_recurring"`
	RecurringDuration int        `json:"recurring_duration,omitempty"` // total occurrences, in days
	CurrentDay        int        `json:"current_day,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`

	LastSentDate *time.Time `json:"last_sent_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Due reports whether the reminder should be picked up by a sweep at now:
// pending, past its send time, under the retry cap and past any backoff
// deadline.
func (r Reminder) Due(now time.Time) bool {
	if r.Status != StatusPending || r.SendAt.After(now) {
		return false
	}
	if r.RetryCount >= MaxRetries {
		return false
	}
	if r.NextRetry != nil && r.NextRetry.After(now) {
		return false
	}
	return true
}
