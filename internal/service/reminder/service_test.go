package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/goalpulse/reminder-service/internal/mocks/service/reminder"
	"github.com/goalpulse/reminder-service/internal/model"
)

var strategy = retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 2}

func setupService(t *testing.T) (*Service, *mocks.MockreminderRepository, *mocks.MockbadgeCounter, *mocks.Mockcache) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockreminderRepository(ctrl)
	badge := mocks.NewMockbadgeCounter(ctrl)
	cache := mocks.NewMockcache(ctrl)

	return NewService(repo, badge, cache), repo, badge, cache
}

func validReminder() model.Reminder {
	return model.Reminder{
		GoalID:  uuid.New(),
		UserID:  uuid.New(),
		Title:   "Morning run",
		Channel: model.ChannelPush,
		SendAt:  time.Now().Add(time.Hour),
	}
}

func TestService_CreateReminder(t *testing.T) {
	svc, repo, _, cache := setupService(t)

	rem := validReminder()
	id := uuid.New()

	repo.EXPECT().CreateReminder(gomock.Any(), rem).Return(id, nil)
	cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(model.StatusPending)).Return(nil)

	got, err := svc.CreateReminder(context.Background(), strategy, rem)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestService_CreateReminder_RecurringDefaults(t *testing.T) {
	svc, repo, _, cache := setupService(t)

	rem := validReminder()
	rem.IsRecurring = true
	rem.RecurringDuration = 30

	id := uuid.New()

	repo.EXPECT().CreateReminder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got model.Reminder) (uuid.UUID, error) {
			assert.Equal(t, 1, got.CurrentDay)
			require.NotNil(t, got.EndDate)
			assert.Equal(t, rem.SendAt.Add(29*24*time.Hour), *got.EndDate)
			return id, nil
		})
	cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), gomock.Any()).Return(nil)

	_, err := svc.CreateReminder(context.Background(), strategy, rem)
	assert.NoError(t, err)
}

func TestService_CreateReminder_Invalid(t *testing.T) {
	svc, _, _, _ := setupService(t)

	tests := []struct {
		name   string
		mutate func(*model.Reminder)
	}{
		{name: "missing user", mutate: func(r *model.Reminder) { r.UserID = uuid.Nil }},
		{name: "missing goal", mutate: func(r *model.Reminder) { r.GoalID = uuid.Nil }},
		{name: "missing title", mutate: func(r *model.Reminder) { r.Title = "" }},
		{name: "unknown channel", mutate: func(r *model.Reminder) { r.Channel = "sms" }},
		{name: "email without recipient", mutate: func(r *model.Reminder) { r.Channel = model.ChannelEmail }},
		{name: "missing send_at", mutate: func(r *model.Reminder) { r.SendAt = time.Time{} }},
		{name: "recurring without duration", mutate: func(r *model.Reminder) { r.IsRecurring = true }},
		{name: "current day out of range", mutate: func(r *model.Reminder) {
			r.IsRecurring = true
			r.RecurringDuration = 7
			r.CurrentDay = 8
		}},
		{name: "send_at past end date", mutate: func(r *model.Reminder) {
			r.IsRecurring = true
			r.RecurringDuration = 7
			end := r.SendAt.Add(-time.Hour)
			r.EndDate = &end
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := validReminder()
			tt.mutate(&rem)

			_, err := svc.CreateReminder(context.Background(), strategy, rem)
			assert.ErrorIs(t, err, ErrInvalidReminder)
		})
	}
}

func TestService_GetReminderStatusByID_CacheHit(t *testing.T) {
	svc, _, _, cache := setupService(t)

	id := uuid.New()
	cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return(string(model.StatusSent), nil)

	status, err := svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, status)
}

func TestService_GetReminderStatusByID_CacheMiss(t *testing.T) {
	svc, repo, _, cache := setupService(t)

	id := uuid.New()
	cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)
	repo.EXPECT().GetReminderByID(gomock.Any(), id).Return(model.Reminder{ID: id, Status: model.StatusPending}, nil)
	cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(model.StatusPending)).Return(nil)

	status, err := svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)
}

func TestService_GetReminderStatusByID_CacheOutageFallsBack(t *testing.T) {
	svc, repo, _, cache := setupService(t)

	id := uuid.New()
	cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", errors.New("connection refused"))
	repo.EXPECT().GetReminderByID(gomock.Any(), id).Return(model.Reminder{ID: id, Status: model.StatusSent}, nil)
	cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(model.StatusSent)).Return(nil)

	status, err := svc.GetReminderStatusByID(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSent, status)
}

func TestService_Acknowledge(t *testing.T) {
	svc, repo, badge, _ := setupService(t)

	id := uuid.New()
	userID := uuid.New()

	repo.EXPECT().GetReminderByID(gomock.Any(), id).Return(model.Reminder{ID: id, UserID: userID}, nil)
	badge.EXPECT().Decrement(gomock.Any(), userID).Return(2, nil)

	count, err := svc.Acknowledge(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_Acknowledge_NotFound(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	id := uuid.New()
	notFound := errors.New("reminder not found")
	repo.EXPECT().GetReminderByID(gomock.Any(), id).Return(model.Reminder{}, notFound)

	_, err := svc.Acknowledge(context.Background(), id)
	assert.ErrorIs(t, err, notFound)
}

func TestService_CancelReminder(t *testing.T) {
	svc, repo, _, cache := setupService(t)

	id := uuid.New()
	repo.EXPECT().CancelReminder(gomock.Any(), id).Return(nil)
	cache.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(model.StatusCancelled)).Return(nil)

	err := svc.CancelReminder(context.Background(), strategy, id)
	assert.NoError(t, err)
}
