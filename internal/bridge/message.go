// Package bridge reworks the app's client/service-worker messaging as
// a hub: connected clients exchange structured messages with the
// service, which forwards due checks to the scanner and fans badge
// updates out to every open instance.
package bridge

import "github.com/google/uuid"

// MessageType enumerates the client<->worker protocol.
type MessageType string

const (
	// MsgCheckDueReminders asks for an immediate due check. Sent by a
	// client on focus, visibility change or its poll interval.
	MsgCheckDueReminders MessageType = "CHECK_DUE_REMINDERS"

	// MsgRemindersChecked answers a check with the number of
	// reminders delivered by the resulting sweep.
	MsgRemindersChecked MessageType = "REMINDERS_CHECKED"

	// MsgBadgeCountUpdated carries a user's new badge count to every
	// open instance.
	MsgBadgeCountUpdated MessageType = "BADGE_COUNT_UPDATED"

	// MsgPlayNotificationSound tells the client a delivery just
	// happened while it was open.
	MsgPlayNotificationSound MessageType = "PLAY_NOTIFICATION_SOUND"

	// MsgGetUserID is a request/response pair resolved over the
	// message's reply channel.
	MsgGetUserID MessageType = "GET_USER_ID"
)

// Message is one protocol frame.
type Message struct {
	Type   MessageType `json:"type"`
	Count  int         `json:"count,omitempty"`
	UserID uuid.UUID   `json:"user_id,omitempty"`

	// Reply carries the response for request/response messages. Never
	// serialized.
	Reply chan Message `json:"-"`
}
