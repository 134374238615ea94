package dto

import "time"

// CreateReminderRequest is the payload for scheduling a reminder.
type CreateReminderRequest struct {
	GoalID      string    `json:"goal_id" validate:"required,uuid"`
	UserID      string    `json:"user_id" validate:"required,uuid"`
	UserEmail   string    `json:"user_email" validate:"omitempty,email"`
	UserName    string    `json:"user_name"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Channel     string    `json:"channel" validate:"required,oneof=push email"`
	SendAt      time.Time `json:"send_at" validate:"required"`

	IsRecurring       bool       `json:"is_recurring"`
	RecurringDuration int        `json:"recurring_duration" validate:"omitempty,min=1"`
	EndDate           *time.Time `json:"end_date"`
}
