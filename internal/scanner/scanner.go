// Package scanner runs one sweep over the reminder store: select the
// due set, claim each record, dispatch it and settle its next state.
package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/backoff"
	"github.com/goalpulse/reminder-service/internal/model"
	"github.com/goalpulse/reminder-service/internal/repository/reminder"
	"github.com/goalpulse/reminder-service/internal/schedule"
)

//go:generate mockgen -source=scanner.go -destination=../mocks/scanner/mock.go -package=mocks

type reminderStore interface {
	DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
	ClaimReminder(ctx context.Context, id uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	UpdateRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetry *time.Time) error
	AdvanceRecurring(ctx context.Context, id uuid.UUID, currentDay int, nextSendAt, sentAt time.Time) error
}

type reminderDispatcher interface {
	Dispatch(ctx context.Context, rem model.Reminder) error
}

type badgeCounter interface {
	Increment(ctx context.Context, userID uuid.UUID) (int, error)
}

// ItemError records a single reminder's failure inside a batch result.
type ItemError struct {
	ReminderID uuid.UUID `json:"reminderId"`
	Error      string    `json:"error"`
}

// Result accumulates the outcome of one sweep.
type Result struct {
	Processed  int         `json:"processed"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors"`
}

// Scanner orchestrates one sweep per Scan call. Both trigger paths
// (the scheduled sweep and the client poll) funnel into the same
// Scan; the claim step keeps overlapping invocations from delivering
// the same reminder twice.
type Scanner struct {
	store     reminderStore
	dispatch  reminderDispatcher
	badge     badgeCounter
	policy    backoff.Policy
	batchSize int
}

// New creates a scanner. badge may be nil when badge counting is not
// wired (tests, one-off CLI sweeps).
func New(store reminderStore, dispatch reminderDispatcher, badge badgeCounter, policy backoff.Policy, batchSize int) *Scanner {
	if batchSize <= 0 {
		batchSize = 50
	}

	return &Scanner{
		store:     store,
		dispatch:  dispatch,
		badge:     badge,
		policy:    policy,
		batchSize: batchSize,
	}
}

// Scan performs one synchronous, sequential pass over the due set.
//
// Reminders are processed one at a time; a per-item failure is
// recorded in the result and never aborts the siblings. An error is
// returned only when the due set itself cannot be read.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	now := time.Now()

	due, err := s.store.DueReminders(ctx, now, s.batchSize)
	if err != nil {
		return Result{}, err
	}

	var result Result

	if len(due) == 0 {
		return result, nil
	}

	for _, rem := range due {
		if err := s.store.ClaimReminder(ctx, rem.ID); err != nil {
			if errors.Is(err, reminder.ErrAlreadyClaimed) {
				// A concurrent sweep owns this one.
				zlog.Logger.Debug().Str("reminder_id", rem.ID.String()).Msg("reminder claimed elsewhere, skipping")
				continue
			}

			result.Processed++
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ReminderID: rem.ID, Error: err.Error()})
			continue
		}

		result.Processed++

		if err := s.dispatch.Dispatch(ctx, rem); err != nil {
			s.recordFailure(ctx, rem, err)
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ReminderID: rem.ID, Error: err.Error()})
			continue
		}

		if err := s.settleSuccess(ctx, rem); err != nil {
			// Delivered but not settled: the user got the notification,
			// only the bookkeeping write failed. Record and move on.
			zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to settle delivered reminder")
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ReminderID: rem.ID, Error: err.Error()})
			continue
		}

		result.Successful++

		if s.badge != nil {
			if _, err := s.badge.Increment(ctx, rem.UserID); err != nil {
				zlog.Logger.Warn().Err(err).Str("user_id", rem.UserID.String()).Msg("failed to bump badge count")
			}
		}
	}

	return result, nil
}

// recordFailure releases the claim and applies the retry policy:
// bump the count, schedule the next attempt or mark failed for good.
func (s *Scanner) recordFailure(ctx context.Context, rem model.Reminder, cause error) {
	zlog.Logger.Warn().Err(cause).
		Str("reminder_id", rem.ID.String()).
		Int("retry_count", rem.RetryCount+1).
		Msg("reminder dispatch failed")

	retryCount := rem.RetryCount + 1
	nextRetry := s.policy.NextRetry(time.Now(), retryCount)

	if err := s.store.UpdateRetry(ctx, rem.ID, retryCount, nextRetry); err != nil {
		zlog.Logger.Error().Err(err).Str("reminder_id", rem.ID.String()).Msg("failed to record retry")
	}
}

// settleSuccess marks the reminder sent, or rolls a recurring one
// forward to its next occurrence.
func (s *Scanner) settleSuccess(ctx context.Context, rem model.Reminder) error {
	now := time.Now()

	adv := schedule.Next(rem)
	if adv.Done {
		return s.store.MarkSent(ctx, rem.ID, now)
	}

	return s.store.AdvanceRecurring(ctx, rem.ID, adv.CurrentDay, adv.NextSendAt, now)
}
