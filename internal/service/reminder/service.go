package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/reminder/mock.go -package=mocks

// ErrInvalidReminder rejects a reminder that breaks a creation
// invariant before it reaches the store.
var ErrInvalidReminder = errors.New("invalid reminder")

type reminderRepository interface {
	CreateReminder(context.Context, model.Reminder) (uuid.UUID, error)
	GetReminderByID(context.Context, uuid.UUID) (model.Reminder, error)
	GetAllReminders(context.Context) ([]model.Reminder, error)
	CancelReminder(context.Context, uuid.UUID) error
}

type badgeCounter interface {
	Decrement(ctx context.Context, userID uuid.UUID) (int, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service owns the reminder lifecycle outside the sweep: creation,
// status reads, acknowledgement and durable cancellation.
type Service struct {
	repo  reminderRepository
	badge badgeCounter
	cache cache
}

// NewService creates a reminder service.
func NewService(repo reminderRepository, badge badgeCounter, cache cache) *Service {
	return &Service{repo: repo, badge: badge, cache: cache}
}

// CreateReminder validates invariants, fills recurring defaults and
// persists the reminder.
func (s *Service) CreateReminder(ctx context.Context, strategy retry.Strategy, rem model.Reminder) (uuid.UUID, error) {
	if err := validate(&rem); err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.CreateReminder(ctx, rem)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create reminder: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusPending))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}

	return id, nil
}

// GetReminderStatusByID returns a reminder's status, cache first. Any
// cache error, miss or outage, falls back to the store.
func (s *Service) GetReminderStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder status from cache")
		}

		rem, err := s.repo.GetReminderByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get reminder status: %w", err)
		}

		status = string(rem.Status)

		err = s.cache.SetWithRetry(ctx, strategy, id.String(), status)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
		}
	}

	return model.Status(status), nil
}

// GetReminderByID returns a full reminder record.
func (s *Service) GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	rem, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder: %w", err)
	}

	return rem, nil
}

// GetAllReminders returns the debug listing of scheduled and terminal
// reminders.
func (s *Service) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.GetAllReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all reminders: %w", err)
	}

	return reminders, nil
}

// Acknowledge records that the user saw a delivered notification and
// returns the user's new badge count.
func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID) (int, error) {
	rem, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("acknowledge reminder: %w", err)
	}

	count, err := s.badge.Decrement(ctx, rem.UserID)
	if err != nil {
		return 0, fmt.Errorf("acknowledge reminder: %w", err)
	}

	return count, nil
}

// CancelReminder durably cancels a pending reminder.
func (s *Service) CancelReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	if err := s.repo.CancelReminder(ctx, id); err != nil {
		return fmt.Errorf("cancel reminder: %w", err)
	}

	err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusCancelled))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache reminder status")
	}

	return nil
}

// validate enforces creation invariants and fills recurring defaults.
func validate(rem *model.Reminder) error {
	if rem.UserID == uuid.Nil || rem.GoalID == uuid.Nil {
		return fmt.Errorf("%w: user and goal are required", ErrInvalidReminder)
	}

	if rem.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidReminder)
	}

	switch rem.Channel {
	case model.ChannelPush:
	case model.ChannelEmail:
		if rem.UserEmail == "" {
			return fmt.Errorf("%w: email channel requires a recipient email", ErrInvalidReminder)
		}
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidReminder, rem.Channel)
	}

	if rem.SendAt.IsZero() {
		return fmt.Errorf("%w: send_at is required", ErrInvalidReminder)
	}

	if !rem.IsRecurring {
		return nil
	}

	if rem.RecurringDuration < 1 {
		return fmt.Errorf("%w: recurring duration must be at least one day", ErrInvalidReminder)
	}

	if rem.CurrentDay == 0 {
		rem.CurrentDay = 1
	}

	if rem.CurrentDay < 1 || rem.CurrentDay > rem.RecurringDuration {
		return fmt.Errorf("%w: current day out of range", ErrInvalidReminder)
	}

	if rem.EndDate == nil {
		end := rem.SendAt.Add(time.Duration(rem.RecurringDuration-1) * 24 * time.Hour)
		rem.EndDate = &end
	}

	if rem.SendAt.After(*rem.EndDate) {
		return fmt.Errorf("%w: send_at is past the end date", ErrInvalidReminder)
	}

	return nil
}
