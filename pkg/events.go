package pkg

import (
	"context"
	"encoding/json"
)

// HandlerFunc processes a raw event payload delivered on a topic.
type HandlerFunc func(ctx context.Context, msg []byte) error

// StreamHandlerFunc processes a retained message; an error asks for redelivery.
type StreamHandlerFunc func(ctx context.Context, msg StreamMessage) error

type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler HandlerFunc) error
}

// StreamMessage is a persisted event returned on replay.
type StreamMessage struct {
	Data      []byte
	Sequence  uint64
	Timestamp int64
}

// Stream is a persistent topic that can be replayed from the beginning.
type Stream interface {
	Publisher
	Fetch(ctx context.Context, limit int) ([]StreamMessage, error)
	SubscribeStream(ctx context.Context, handler StreamHandlerFunc) error
}

// PublishJSON marshals payload and publishes it. A nil publisher is a no-op.
func PublishJSON(ctx context.Context, p Publisher, topic string, payload any) error {
	if p == nil {
		return nil
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.Publish(ctx, topic, msg)
}
