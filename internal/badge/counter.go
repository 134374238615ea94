// Package badge keeps the per-user count of outstanding notifications
// that the app mirrors to the OS badge. Counts live in Redis; every
// change is published so every open app instance converges on the
// same number.
package badge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// UpdatesChannel is the pub/sub channel badge changes are published on.
const UpdatesChannel = "badge.updates"

// Update is one published badge change.
type Update struct {
	UserID uuid.UUID `json:"user_id"`
	Count  int       `json:"count"`
}

// Counter tracks per-user badge counts in Redis.
type Counter struct {
	rdb *redis.Client
}

// NewCounter creates a badge counter over the given Redis client.
func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

func key(userID uuid.UUID) string {
	return "badge:" + userID.String()
}

// decrFloor decrements a badge key, never below zero, in one atomic
// step so a concurrent increment cannot be lost to the floor write.
var decrFloor = redis.NewScript(`
local count = redis.call('DECR', KEYS[1])
if count < 0 then
	redis.call('SET', KEYS[1], 0)
	return 0
end
return count
`)

// Increment bumps a user's badge count by one and publishes the new
// value. Called once per notification shown.
func (c *Counter) Increment(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := c.rdb.Incr(ctx, key(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment badge count: %w", err)
	}

	c.publish(ctx, userID, int(count))

	return int(count), nil
}

// Decrement lowers a user's badge count by one, floored at zero, and
// publishes the new value. Called on dismissal or click-through.
func (c *Counter) Decrement(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := decrFloor.Run(ctx, c.rdb, []string{key(userID)}).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement badge count: %w", err)
	}

	c.publish(ctx, userID, count)

	return count, nil
}

// Count returns a user's current badge count. A missing key is zero.
func (c *Counter) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := c.rdb.Get(ctx, key(userID)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to get badge count: %w", err)
	}

	return count, nil
}

// Subscribe listens for badge updates from every service instance and
// invokes fn for each until ctx is cancelled.
func (c *Counter) Subscribe(ctx context.Context, fn func(Update)) {
	sub := c.rdb.Subscribe(ctx, UpdatesChannel)
	defer sub.Close()

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var upd Update
			if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal badge update")
				continue
			}

			fn(upd)
		}
	}
}

func (c *Counter) publish(ctx context.Context, userID uuid.UUID, count int) {
	payload, err := json.Marshal(Update{UserID: userID, Count: count})
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to marshal badge update")
		return
	}

	if err := c.rdb.Publish(ctx, UpdatesChannel, payload).Err(); err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to publish badge update")
	}
}
