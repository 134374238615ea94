// Package dispatch sends one reminder through its configured channel.
//
// Channel choice is an explicit field on the reminder, not a separate
// code path: one dispatcher, two senders.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/model"
	"github.com/goalpulse/reminder-service/pkg/push"
)

// ErrNoDeviceTokens is returned for a push reminder whose user has no
// registered devices.
var ErrNoDeviceTokens = errors.New("no device tokens registered")

// ChannelError wraps a transport failure so the scanner can route it
// to the retry controller while keeping the channel in the batch log.
type ChannelError struct {
	Channel model.Channel
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatch/mock.go -package=mocks

type pushSender interface {
	Send(token string, payload push.Payload) error
	SendMulticast(tokens []string, payload push.Payload) (push.MulticastResult, error)
}

type emailSender interface {
	Send(to, subject, textBody, htmlBody string) error
}

type tokenSource interface {
	DeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// Dispatcher routes a reminder to its delivery channel.
type Dispatcher struct {
	push   pushSender
	email  emailSender
	tokens tokenSource
}

// NewDispatcher creates a dispatcher over the given channel senders
// and device-token lookup.
func NewDispatcher(p pushSender, e emailSender, t tokenSource) *Dispatcher {
	return &Dispatcher{push: p, email: e, tokens: t}
}

// Dispatch sends the reminder through its channel. A returned error is
// always a *ChannelError (or ErrNoDeviceTokens wrapped in one), so a
// failed attempt is retryable by policy.
func (d *Dispatcher) Dispatch(ctx context.Context, rem model.Reminder) error {
	switch rem.Channel {
	case model.ChannelPush:
		return d.dispatchPush(ctx, rem)
	case model.ChannelEmail:
		return d.dispatchEmail(rem)
	default:
		return &ChannelError{Channel: rem.Channel, Err: fmt.Errorf("unknown channel %q", rem.Channel)}
	}
}

func (d *Dispatcher) dispatchPush(ctx context.Context, rem model.Reminder) error {
	tokens, err := d.tokens.DeviceTokens(ctx, rem.UserID)
	if err != nil {
		return &ChannelError{Channel: model.ChannelPush, Err: err}
	}

	if len(tokens) == 0 {
		return &ChannelError{Channel: model.ChannelPush, Err: ErrNoDeviceTokens}
	}

	payload := buildPayload(rem)

	if len(tokens) == 1 {
		if err := d.push.Send(tokens[0], payload); err != nil {
			return &ChannelError{Channel: model.ChannelPush, Err: err}
		}

		return nil
	}

	result, err := d.push.SendMulticast(tokens, payload)
	if err != nil {
		return &ChannelError{Channel: model.ChannelPush, Err: err}
	}

	// A stale device must not cost the user the notification: one
	// delivered token makes the whole dispatch a success, the rest is
	// only logged.
	for token, code := range result.Errors {
		zlog.Logger.Warn().
			Str("reminder_id", rem.ID.String()).
			Str("token", token).
			Str("error", code).
			Msg("push delivery failed for device token")
	}

	if result.Success < 1 {
		return &ChannelError{
			Channel: model.ChannelPush,
			Err:     fmt.Errorf("all %d device tokens failed", len(tokens)),
		}
	}

	return nil
}

func (d *Dispatcher) dispatchEmail(rem model.Reminder) error {
	subject := fmt.Sprintf("Reminder: %s", rem.Title)

	name := rem.UserName
	if name == "" {
		name = "there"
	}

	textBody := fmt.Sprintf("Hello %s, it's time for your goal: %s.", name, rem.Title)
	htmlBody := fmt.Sprintf("<p>Hello %s,</p><p>It's time for your goal: <strong>%s</strong>.</p>", name, rem.Title)
	if rem.Description != "" {
		textBody += " " + rem.Description
		htmlBody += fmt.Sprintf("<p>%s</p>", rem.Description)
	}

	if err := d.email.Send(rem.UserEmail, subject, textBody, htmlBody); err != nil {
		return &ChannelError{Channel: model.ChannelEmail, Err: err}
	}

	return nil
}

func buildPayload(rem model.Reminder) push.Payload {
	body := rem.Description
	if body == "" {
		body = fmt.Sprintf("It's time for your goal: %s", rem.Title)
	}

	return push.Payload{
		Notification: push.Notification{
			Title: rem.Title,
			Body:  body,
		},
		Data: push.Data{
			GoalID:      rem.GoalID.String(),
			Type:        "goal-reminder",
			ReminderID:  rem.ID.String(),
			Timestamp:   strconv.FormatInt(time.Now().UnixMilli(), 10),
			ClickAction: "/goals/" + rem.GoalID.String(),
		},
	}
}
