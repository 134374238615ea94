package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpulse/reminder-service/internal/badge"
	mocks "github.com/goalpulse/reminder-service/internal/mocks/bridge"
	"github.com/goalpulse/reminder-service/internal/scanner"
)

func setupHub(t *testing.T) (*Hub, *mocks.MockscanTrigger, *mocks.MockdueCounter) {
	ctrl := gomock.NewController(t)
	sc := mocks.NewMockscanTrigger(ctrl)
	due := mocks.NewMockdueCounter(ctrl)

	h := NewHub(sc, due, NewGate(30*time.Second), 2*time.Minute)

	return h, sc, due
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()

	select {
	case msg := <-c.Out:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for hub message")
		return Message{}
	}
}

func TestHub_Check_RunsScan(t *testing.T) {
	h, sc, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(2, nil)
	sc.EXPECT().Scan(gomock.Any()).Return(scanner.Result{Processed: 2, Successful: 2}, nil)

	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})

	checked := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, checked.Type)
	assert.Equal(t, 2, checked.Count)

	sound := receive(t, c)
	assert.Equal(t, MsgPlayNotificationSound, sound.Type)
}

func TestHub_Check_SweepOutlivesRequestContext(t *testing.T) {
	h, sc, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(1, nil)
	sc.EXPECT().Scan(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (scanner.Result, error) {
			// The request context is gone by the time the sweep runs;
			// the sweep must still complete.
			assert.NoError(t, ctx.Err())
			return scanner.Result{Processed: 1, Successful: 1}, nil
		})

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel() // the HTTP handler has already returned

	h.Handle(reqCtx, c, Message{Type: MsgCheckDueReminders})

	checked := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, checked.Type)
	assert.Equal(t, 1, checked.Count)
}

func TestHub_Check_CooldownAnswersWithoutScan(t *testing.T) {
	h, sc, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(1, nil)
	sc.EXPECT().Scan(gomock.Any()).Return(scanner.Result{Processed: 1, Successful: 1}, nil)

	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})
	receive(t, c) // REMINDERS_CHECKED
	receive(t, c) // PLAY_NOTIFICATION_SOUND

	// Second check lands inside the cooldown window: no further Scan
	// expectation, the client still gets an answer.
	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})

	msg := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, msg.Type)
	assert.Zero(t, msg.Count)
}

func TestHub_Check_NothingDueSkipsScan(t *testing.T) {
	h, _, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(0, nil)

	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})

	msg := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, msg.Type)
	assert.Zero(t, msg.Count)
}

func TestHub_Check_ScanErrorAnswersZero(t *testing.T) {
	h, sc, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(1, nil)
	sc.EXPECT().Scan(gomock.Any()).Return(scanner.Result{}, errors.New("db down"))

	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})

	msg := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, msg.Type)
	assert.Zero(t, msg.Count)
}

func TestHub_NoDeliveriesNoSound(t *testing.T) {
	h, sc, due := setupHub(t)

	c := h.Register(uuid.New())
	defer h.Unregister(c)

	due.EXPECT().CountDueWithin(gomock.Any(), gomock.Any()).Return(1, nil)
	sc.EXPECT().Scan(gomock.Any()).Return(scanner.Result{Processed: 1, Failed: 1}, nil)

	h.Handle(context.Background(), c, Message{Type: MsgCheckDueReminders})

	msg := receive(t, c)
	assert.Equal(t, MsgRemindersChecked, msg.Type)
	assert.Zero(t, msg.Count)

	select {
	case extra := <-c.Out:
		t.Fatalf("unexpected message %s", extra.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_GetUserID(t *testing.T) {
	h, _, _ := setupHub(t)

	userID := uuid.New()
	c := h.Register(userID)
	defer h.Unregister(c)

	reply := make(chan Message, 1)
	h.Handle(context.Background(), c, Message{Type: MsgGetUserID, Reply: reply})

	msg := <-reply
	assert.Equal(t, MsgGetUserID, msg.Type)
	assert.Equal(t, userID, msg.UserID)
}

func TestHub_BroadcastBadge_OnlyMatchingUser(t *testing.T) {
	h, _, _ := setupHub(t)

	userID := uuid.New()
	first := h.Register(userID)
	second := h.Register(userID)
	other := h.Register(uuid.New())
	defer h.Unregister(first)
	defer h.Unregister(second)
	defer h.Unregister(other)

	h.BroadcastBadge(badge.Update{UserID: userID, Count: 4})

	for _, c := range []*Client{first, second} {
		msg := receive(t, c)
		assert.Equal(t, MsgBadgeCountUpdated, msg.Type)
		assert.Equal(t, 4, msg.Count)
	}

	select {
	case msg := <-other.Out:
		t.Fatalf("unexpected message %s for unrelated user", msg.Type)
	default:
	}
}

func TestHub_SendNeverBlocks(t *testing.T) {
	h, _, _ := setupHub(t)

	userID := uuid.New()
	c := h.Register(userID)
	defer h.Unregister(c)

	// A client that stops draining loses messages instead of wedging
	// the hub.
	for i := 0; i < cap(c.Out)+8; i++ {
		h.BroadcastBadge(badge.Update{UserID: userID, Count: i})
	}

	require.Len(t, c.Out, cap(c.Out))
}
