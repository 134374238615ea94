package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/goalpulse/reminder-service/internal/model"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrNoRemindersFound = errors.New("no reminders found")

	// ErrAlreadyClaimed is returned when a claim or a status-guarded
	// update loses the compare-and-swap, i.e. another sweep got there
	// first or the reminder has reached a terminal state.
	ErrAlreadyClaimed = errors.New("reminder already claimed")
)

const reminderColumns = `
	id, goal_id, user_id, user_email, user_name, title, description, channel,
	send_at, status, retry_count, next_retry,
	is_recurring, recurring_duration, current_day, end_date,
	last_sent_date, created_at, updated_at
`

// Repository provides methods to interact with the reminders table.
//
// Every mutation is a status-guarded compare-and-swap so that two
// overlapping sweeps can never both act on the same reminder.
type Repository struct {
	db         *dbpg.DB
	maxRetries int
}

// NewRepository creates a new reminder repository. maxRetries bounds
// the due query; non-positive falls back to the model default.
func NewRepository(db *dbpg.DB, maxRetries int) *Repository {
	if maxRetries <= 0 {
		maxRetries = model.MaxRetries
	}

	return &Repository{db: db, maxRetries: maxRetries}
}

// CreateReminder inserts a new reminder into the database and returns its ID.
func (r *Repository) CreateReminder(ctx context.Context, rem model.Reminder) (uuid.UUID, error) {
	query := `
		INSERT INTO reminders (
		    goal_id, user_id, user_email, user_name, title, description, channel,
		    send_at, status, is_recurring, recurring_duration, current_day, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9, $10, $11, $12)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query,
		rem.GoalID, rem.UserID, rem.UserEmail, rem.UserName, rem.Title, rem.Description, rem.Channel,
		rem.SendAt, rem.IsRecurring, rem.RecurringDuration, rem.CurrentDay, rem.EndDate,
	).Scan(&rem.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return rem.ID, nil
}

// DueReminders returns up to limit reminders that are due at now:
// pending, past send_at, under the retry cap and past any backoff
// deadline. No ordering is guaranteed beyond send_at ascending.
func (r *Repository) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE status = 'pending'
		  AND send_at <= $1
		  AND retry_count < $2
		  AND (next_retry IS NULL OR next_retry <= $1)
		ORDER BY send_at
		LIMIT $3;
    `

	rows, err := r.db.QueryContext(ctx, query, now, r.maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}

		reminders = append(reminders, rem)
	}

	return reminders, rows.Err()
}

// CountDueWithin returns the number of pending reminders whose send_at
// falls at or before until. The client bridge uses it for its advisory
// early-fire check; the strict due predicate is DueReminders.
func (r *Repository) CountDueWithin(ctx context.Context, until time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reminders
		WHERE status = 'pending'
		  AND send_at <= $1
		  AND retry_count < $2;
    `

	var count int
	if err := r.db.Master.QueryRowContext(ctx, query, until, r.maxRetries).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count due reminders: %w", err)
	}

	return count, nil
}

// ClaimReminder transitions a reminder from pending to processing.
//
// Returns ErrAlreadyClaimed when the reminder is no longer pending,
// which means a concurrent sweep claimed it first.
func (r *Repository) ClaimReminder(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reminders
		SET status = 'processing', updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `

	return r.execGuarded(ctx, query, id)
}

// MarkSent transitions a claimed reminder to its terminal sent state.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `
		UPDATE reminders
		SET status = 'sent', last_sent_date = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'processing';
    `

	return r.execGuarded(ctx, query, id, sentAt)
}

// UpdateRetry records a failed attempt: bumps retry_count and either
// schedules the next attempt or marks the reminder failed for good.
// The terminal decision belongs to the backoff policy and arrives as
// a nil deadline; the store only persists it.
func (r *Repository) UpdateRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetry *time.Time) error {
	status := model.StatusPending
	if nextRetry == nil {
		status = model.StatusFailed
	}

	query := `
		UPDATE reminders
		SET status = $2, retry_count = $3, next_retry = $4, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'processing');
    `

	return r.execGuarded(ctx, query, id, status, retryCount, nextRetry)
}

// AdvanceRecurring rolls a claimed recurring reminder to its next
// occurrence: back to pending with retries reset.
func (r *Repository) AdvanceRecurring(ctx context.Context, id uuid.UUID, currentDay int, nextSendAt, sentAt time.Time) error {
	query := `
		UPDATE reminders
		SET status = 'pending', current_day = $2, send_at = $3,
		    retry_count = 0, next_retry = NULL, last_sent_date = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'processing';
    `

	return r.execGuarded(ctx, query, id, currentDay, nextSendAt, sentAt)
}

// CancelReminder transitions a pending reminder to cancelled. Unlike
// the old in-process timer cancellation this is durable: a cancelled
// reminder survives restarts and is never selected by a sweep.
func (r *Repository) CancelReminder(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reminders
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `

	return r.execGuarded(ctx, query, id)
}

// GetReminderByID retrieves a single reminder.
func (r *Repository) GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE id = $1;
    `

	rem, err := scanReminder(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, ErrReminderNotFound
		}

		return model.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}

	return rem, nil
}

// GetAllReminders retrieves all reminders ordered by send_at
// descending. Terminal records stay queryable here for inspection.
func (r *Repository) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		ORDER BY send_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}

		reminders = append(reminders, rem)
	}

	if len(reminders) == 0 {
		return nil, ErrNoRemindersFound
	}

	return reminders, nil
}

// execGuarded runs a status-guarded update and maps a zero row count
// to ErrAlreadyClaimed.
func (r *Repository) execGuarded(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrAlreadyClaimed
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner) (model.Reminder, error) {
	var (
		rem          model.Reminder
		userName     sql.NullString
		description  sql.NullString
		nextRetry    sql.NullTime
		endDate      sql.NullTime
		lastSentDate sql.NullTime
	)

	err := row.Scan(
		&rem.ID, &rem.GoalID, &rem.UserID, &rem.UserEmail, &userName, &rem.Title, &description, &rem.Channel,
		&rem.SendAt, &rem.Status, &rem.RetryCount, &nextRetry,
		&rem.IsRecurring, &rem.RecurringDuration, &rem.CurrentDay, &endDate,
		&lastSentDate, &rem.CreatedAt, &rem.UpdatedAt,
	)
	if err != nil {
		return model.Reminder{}, err
	}

	rem.UserName = userName.String
	rem.Description = description.String
	if nextRetry.Valid {
		rem.NextRetry = &nextRetry.Time
	}
	if endDate.Valid {
		rem.EndDate = &endDate.Time
	}
	if lastSentDate.Valid {
		rem.LastSentDate = &lastSentDate.Time
	}

	return rem, nil
}
