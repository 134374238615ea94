// Package bridge exposes the client<->worker message protocol over
// plain HTTP: connect, post a message, long-poll for replies and
// broadcasts. In the app this is the service-worker postMessage
// surface; anything that can speak JSON can attach here.
package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/api/respond"
	"github.com/goalpulse/reminder-service/internal/bridge"
)

// pollWait is how long a message poll hangs before answering empty.
const pollWait = 25 * time.Second

type connectRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type connectResponse struct {
	InstanceID uuid.UUID `json:"instance_id"`
}

// Handler attaches HTTP instances to the bridge hub.
type Handler struct {
	hub *bridge.Hub

	mu        sync.Mutex
	instances map[uuid.UUID]*bridge.Client
}

func NewHandler(hub *bridge.Hub) *Handler {
	return &Handler{
		hub:       hub,
		instances: make(map[uuid.UUID]*bridge.Client),
	}
}

// Connect registers one open app instance and returns its handle.
func (h *Handler) Connect(c *ginext.Context) {
	var req connectRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil || req.UserID == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	client := h.hub.Register(req.UserID)
	instanceID := uuid.New()

	h.mu.Lock()
	h.instances[instanceID] = client
	h.mu.Unlock()

	respond.Created(c.Writer, connectResponse{InstanceID: instanceID})
}

// Disconnect detaches an instance.
func (h *Handler) Disconnect(c *ginext.Context) {
	client, instanceID, ok := h.client(c)
	if !ok {
		return
	}

	h.mu.Lock()
	delete(h.instances, instanceID)
	h.mu.Unlock()

	h.hub.Unregister(client)

	respond.OK(c.Writer, "disconnected")
}

// Send forwards one protocol message from the instance to the hub.
// GET_USER_ID is request/response and answered inline; everything
// else is acknowledged immediately and any result arrives via Poll.
func (h *Handler) Send(c *ginext.Context) {
	client, _, ok := h.client(c)
	if !ok {
		return
	}

	var msg bridge.Message
	if err := json.NewDecoder(c.Request.Body).Decode(&msg); err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if msg.Type == bridge.MsgGetUserID {
		reply := make(chan bridge.Message, 1)
		msg.Reply = reply

		h.hub.Handle(c.Request.Context(), client, msg)

		respond.OK(c.Writer, <-reply)
		return
	}

	h.hub.Handle(c.Request.Context(), client, msg)

	respond.OK(c.Writer, "accepted")
}

// Poll drains pending messages for the instance, hanging until one
// arrives or the wait expires.
func (h *Handler) Poll(c *ginext.Context) {
	client, _, ok := h.client(c)
	if !ok {
		return
	}

	messages := drain(client.Out)

	if len(messages) == 0 {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(pollWait):
		case msg := <-client.Out:
			messages = append(messages, msg)
			messages = append(messages, drain(client.Out)...)
		}
	}

	if messages == nil {
		messages = []bridge.Message{}
	}

	respond.OK(c.Writer, messages)
}

func drain(ch <-chan bridge.Message) []bridge.Message {
	var messages []bridge.Message

	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

func (h *Handler) client(c *ginext.Context) (*bridge.Client, uuid.UUID, bool) {
	idStr := c.Param("instance_id")
	instanceID, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Warn().Str("instance_id", idStr).Msg("invalid bridge instance id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid instance id"))
		return nil, uuid.Nil, false
	}

	h.mu.Lock()
	client, ok := h.instances[instanceID]
	h.mu.Unlock()

	if !ok {
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("unknown instance"))
		return nil, uuid.Nil, false
	}

	return client, instanceID, true
}
