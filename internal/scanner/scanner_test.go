package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpulse/reminder-service/internal/backoff"
	mocks "github.com/goalpulse/reminder-service/internal/mocks/scanner"
	"github.com/goalpulse/reminder-service/internal/model"
	"github.com/goalpulse/reminder-service/internal/repository/reminder"
)

func setupScanner(t *testing.T) (*Scanner, *mocks.MockreminderStore, *mocks.MockreminderDispatcher, *mocks.MockbadgeCounter) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockreminderStore(ctrl)
	dispatcher := mocks.NewMockreminderDispatcher(ctrl)
	badge := mocks.NewMockbadgeCounter(ctrl)

	s := New(store, dispatcher, badge, backoff.Default(), 50)

	return s, store, dispatcher, badge
}

func dueReminder() model.Reminder {
	return model.Reminder{
		ID:      uuid.New(),
		GoalID:  uuid.New(),
		UserID:  uuid.New(),
		Title:   "Morning run",
		Channel: model.ChannelPush,
		SendAt:  time.Now().Add(-time.Second),
		Status:  model.StatusPending,
	}
}

func TestScanner_Scan_EmptyBatch(t *testing.T) {
	s, store, _, _ := setupScanner(t)

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return(nil, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Processed)
	assert.Zero(t, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
}

func TestScanner_Scan_DueQueryError(t *testing.T) {
	s, store, _, _ := setupScanner(t)

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return(nil, errors.New("db down"))

	_, err := s.Scan(context.Background())
	assert.Error(t, err)
}

func TestScanner_Scan_SuccessMarksSent(t *testing.T) {
	s, store, dispatcher, badge := setupScanner(t)

	rem := dueReminder()

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), rem).Return(nil)
	store.EXPECT().MarkSent(gomock.Any(), rem.ID, gomock.Any()).Return(nil)
	badge.EXPECT().Increment(gomock.Any(), rem.UserID).Return(1, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Successful)
	assert.Zero(t, result.Failed)
}

func TestScanner_Scan_SuccessAdvancesRecurring(t *testing.T) {
	s, store, dispatcher, badge := setupScanner(t)

	rem := dueReminder()
	rem.IsRecurring = true
	rem.RecurringDuration = 30
	rem.CurrentDay = 1

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), rem).Return(nil)
	store.EXPECT().
		AdvanceRecurring(gomock.Any(), rem.ID, 2, rem.SendAt.Add(24*time.Hour), gomock.Any()).
		Return(nil)
	badge.EXPECT().Increment(gomock.Any(), rem.UserID).Return(1, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
}

func TestScanner_Scan_FailureSchedulesRetry(t *testing.T) {
	s, store, dispatcher, _ := setupScanner(t)

	rem := dueReminder()

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), rem).Return(errors.New("smtp timeout"))
	store.EXPECT().UpdateRetry(gomock.Any(), rem.ID, 1, gomock.Not(gomock.Nil())).Return(nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, rem.ID, result.Errors[0].ReminderID)
}

func TestScanner_Scan_FailureExhaustsRetries(t *testing.T) {
	s, store, dispatcher, _ := setupScanner(t)

	rem := dueReminder()
	rem.RetryCount = 2

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), rem).Return(errors.New("token rejected"))
	store.EXPECT().UpdateRetry(gomock.Any(), rem.ID, 3, gomock.Nil()).Return(nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestScanner_Scan_SkipsConcurrentlyClaimed(t *testing.T) {
	s, store, _, _ := setupScanner(t)

	rem := dueReminder()

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(reminder.ErrAlreadyClaimed)

	// No Dispatch expectation: a reminder claimed by an overlapping
	// sweep must be delivered exactly once, by the winner.
	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Processed)
	assert.Zero(t, result.Failed)
}

func TestScanner_Scan_ItemFailureDoesNotAbortBatch(t *testing.T) {
	s, store, dispatcher, badge := setupScanner(t)

	failing := dueReminder()
	healthy := dueReminder()

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).
		Return([]model.Reminder{failing, healthy}, nil)

	store.EXPECT().ClaimReminder(gomock.Any(), failing.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), failing).Return(errors.New("boom"))
	store.EXPECT().UpdateRetry(gomock.Any(), failing.ID, 1, gomock.Any()).Return(nil)

	store.EXPECT().ClaimReminder(gomock.Any(), healthy.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), healthy).Return(nil)
	store.EXPECT().MarkSent(gomock.Any(), healthy.ID, gomock.Any()).Return(nil)
	badge.EXPECT().Increment(gomock.Any(), healthy.UserID).Return(1, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, failing.ID, result.Errors[0].ReminderID)
}

func TestScanner_Scan_LastOccurrenceMarksSent(t *testing.T) {
	s, store, dispatcher, badge := setupScanner(t)

	rem := dueReminder()
	rem.IsRecurring = true
	rem.RecurringDuration = 30
	rem.CurrentDay = 30

	store.EXPECT().DueReminders(gomock.Any(), gomock.Any(), 50).Return([]model.Reminder{rem}, nil)
	store.EXPECT().ClaimReminder(gomock.Any(), rem.ID).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), rem).Return(nil)
	store.EXPECT().MarkSent(gomock.Any(), rem.ID, gomock.Any()).Return(nil)
	badge.EXPECT().Increment(gomock.Any(), rem.UserID).Return(1, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
}
