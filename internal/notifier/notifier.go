package notifier

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventBoardChanged is the only event the board emits: no payload beyond
// "something changed, re-fetch".
const EventBoardChanged = "board:changed"

const redisChannel = "slotboard:changed"

// Notifier signals subscribers that board state changed. Fire-and-forget:
// delivery failure never fails or rolls back the mutation that triggered it.
type Notifier interface {
	BoardChanged(ctx context.Context)
}

// Broadcaster fans the change signal out to local websocket clients and,
// when Redis is configured, to the other instances of the board.
type Broadcaster struct {
	hub      *Hub
	redis    *redis.Client
	instance string
	logger   *slog.Logger
}

func NewBroadcaster(hub *Hub, redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		redis:    redisClient,
		instance: uuid.NewString(),
		logger:   logger,
	}
}

func (b *Broadcaster) BoardChanged(ctx context.Context) {
	b.hub.Broadcast(EventBoardChanged)

	if b.redis == nil {
		return
	}
	if err := b.redis.Publish(ctx, redisChannel, b.instance).Err(); err != nil {
		b.logger.Warn("failed to publish board change to redis", "error", err.Error())
	}
}

// Listen bridges change signals published by other instances into the local
// hub. It blocks until ctx is cancelled; call it in its own goroutine.
func (b *Broadcaster) Listen(ctx context.Context) {
	if b.redis == nil {
		return
	}

	pubsub := b.redis.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			// Local clients were already notified by the publishing call.
			if msg.Payload == b.instance {
				continue
			}
			b.hub.Broadcast(EventBoardChanged)
		}
	}
}
