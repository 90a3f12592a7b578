// Package events publishes application lifecycle events to Redis pub/sub
// channels so interested consumers (notification fan-out, audit tooling) can
// react without coupling to the request path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types emitted by the application.
const (
	TypeSignedIn       = "auth.signed_in"
	TypeSignedOut      = "auth.signed_out"
	TypeEmailVerified  = "auth.email_verified"
	TypeReviewApproved = "review.published"
	TypeBlogApproved   = "blog.published"
	TypeMessageCreated = "message.created"
)

// Event is the JSON payload published on user and broadcast channels.
type Event struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id,omitempty"`
	EntityID  uint      `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes events into Redis channels. A nil Redis client makes
// every publish a no-op, so callers never need to guard.
type Publisher struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewPublisher creates a Publisher using the provided Redis client.
func NewPublisher(rdb *redis.Client, logger *slog.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

// PublishUser sends an event to a user's channel. Best effort: failures are
// logged, never returned, because event delivery must not fail the request.
func (p *Publisher) PublishUser(ctx context.Context, userID uint, evt Event) {
	if p == nil || p.rdb == nil {
		return
	}
	evt.UserID = userID
	evt.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	channel := fmt.Sprintf("events:user:%d", userID)
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil && p.logger != nil {
		p.logger.WarnContext(ctx, "failed to publish user event",
			slog.String("type", evt.Type), slog.Any("user_id", userID), slog.String("error", err.Error()))
	}
}

// PublishBroadcast sends an event to the broadcast channel.
func (p *Publisher) PublishBroadcast(ctx context.Context, evt Event) {
	if p == nil || p.rdb == nil {
		return
	}
	evt.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, "events:broadcast", payload).Err(); err != nil && p.logger != nil {
		p.logger.WarnContext(ctx, "failed to publish broadcast event",
			slog.String("type", evt.Type), slog.String("error", err.Error()))
	}
}

// Subscribe subscribes to all user and broadcast channels and calls onMessage
// for each incoming message until ctx is canceled.
func (p *Publisher) Subscribe(ctx context.Context, onMessage func(channel, payload string)) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	sub := p.rdb.PSubscribe(ctx, "events:user:*", "events:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onMessage(msg.Channel, msg.Payload)
			}
		}
	}()

	return nil
}
