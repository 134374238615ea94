package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/badge"
	"github.com/goalpulse/reminder-service/internal/scanner"
)

//go:generate mockgen -source=hub.go -destination=../mocks/bridge/mock.go -package=mocks

type scanTrigger interface {
	Scan(ctx context.Context) (scanner.Result, error)
}

type dueCounter interface {
	CountDueWithin(ctx context.Context, until time.Time) (int, error)
}

// Client is one connected app instance.
type Client struct {
	UserID uuid.UUID
	Out    chan Message
}

// Hub multiplexes connected clients, gates their poll triggers and
// broadcasts badge updates.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	scanner   scanTrigger
	due       dueCounter
	gate      *Gate
	tolerance time.Duration
}

// NewHub creates a hub. tolerance is the advisory early-fire window a
// client check may look ahead by; it never widens the server's strict
// due predicate.
func NewHub(sc scanTrigger, due dueCounter, gate *Gate, tolerance time.Duration) *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		scanner:   sc,
		due:       due,
		gate:      gate,
		tolerance: tolerance,
	}
}

// Register attaches a client and returns it. The caller drains
// client.Out; messages to a full channel are dropped rather than
// blocking the hub.
func (h *Hub) Register(userID uuid.UUID) *Client {
	c := &Client{
		UserID: userID,
		Out:    make(chan Message, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	return c
}

// Unregister detaches a client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Handle processes one message from a client.
//
// CHECK_DUE_REMINDERS is fire-and-forget for the client: the check
// runs in the background and the client receives REMINDERS_CHECKED on
// its Out channel when the sweep finishes.
func (h *Hub) Handle(ctx context.Context, c *Client, msg Message) {
	switch msg.Type {
	case MsgCheckDueReminders:
		h.handleCheck(ctx, c)

	case MsgGetUserID:
		if msg.Reply != nil {
			msg.Reply <- Message{Type: MsgGetUserID, UserID: c.UserID}
		}

	default:
		zlog.Logger.Warn().Str("type", string(msg.Type)).Msg("unknown bridge message")
	}
}

func (h *Hub) handleCheck(ctx context.Context, c *Client) {
	now := time.Now()

	if !h.gate.Try(now) {
		// Inside the cooldown window; answer without sweeping.
		send(c, Message{Type: MsgRemindersChecked, Count: 0})
		return
	}

	// Advisory look-ahead: skip the sweep entirely when nothing comes
	// due within the tolerance window. The sweep itself still applies
	// the strict send_at<=now predicate.
	if h.due != nil {
		count, err := h.due.CountDueWithin(ctx, now.Add(h.tolerance))
		if err == nil && count == 0 {
			send(c, Message{Type: MsgRemindersChecked, Count: 0})
			return
		}
	}

	go func() {
		// The check is fire-and-forget for the client: the HTTP request
		// that carried it returns immediately and its context is then
		// cancelled, so the sweep runs on its own context.
		result, err := h.scanner.Scan(context.Background())
		if err != nil {
			zlog.Logger.Error().Err(err).Msg("client-triggered scan failed")
			send(c, Message{Type: MsgRemindersChecked, Count: 0})
			return
		}

		send(c, Message{Type: MsgRemindersChecked, Count: result.Successful})

		if result.Successful > 0 {
			send(c, Message{Type: MsgPlayNotificationSound})
		}
	}()
}

// BroadcastBadge delivers a badge update to every open instance of the
// affected user. Wired as the subscriber callback of badge.Counter so
// updates from any service instance reach clients connected here.
func (h *Hub) BroadcastBadge(upd badge.Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.UserID == upd.UserID {
			send(c, Message{Type: MsgBadgeCountUpdated, Count: upd.Count})
		}
	}
}

// send never blocks; a client that stopped draining loses messages.
func send(c *Client, msg Message) {
	select {
	case c.Out <- msg:
	default:
	}
}
