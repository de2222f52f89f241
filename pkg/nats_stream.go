package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStream implements Stream using NATS JetStream for persistent event streaming.
type NATSStream struct {
	conn     *nats.Conn
	js       jetstream.JetStream
	stream   jetstream.Stream
	consumer jetstream.Consumer
	cc       jetstream.ConsumeContext
}

type NATSStreamConfig struct {
	URL          string
	StreamName   string        // e.g. "KITCHEN_EVENTS"
	Subjects     []string      // e.g. "kitchen.>"
	ConsumerName string        // durable consumer for this process
	MaxAge       time.Duration // retention window
	MaxMsgs      int64         // 0 = unlimited
}

// NewNATSStream creates a NATSStream and ensures the stream and consumer exist.
func NewNATSStream(ctx context.Context, cfg NATSStreamConfig) (*NATSStream, error) {
	conn, err := connect(cfg.URL, cfg.ConsumerName)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamConfig := jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: cfg.Subjects,
		MaxAge:   cfg.MaxAge,
	}
	if cfg.MaxMsgs > 0 {
		streamConfig.MaxMsgs = cfg.MaxMsgs
	}

	stream, err := js.CreateOrUpdateStream(ctx, streamConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          cfg.ConsumerName,
		Durable:       cfg.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update consumer %s: %w", cfg.ConsumerName, err)
	}

	return &NATSStream{
		conn:     conn,
		js:       js,
		stream:   stream,
		consumer: consumer,
	}, nil
}

func (s *NATSStream) Publish(ctx context.Context, topic string, msg []byte) error {
	if _, err := s.js.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// Fetch reads up to limit retained messages from the start of the stream
// through an ephemeral ordered consumer, so every process replays the full
// retention window regardless of what the durable consumer has acked.
func (s *NATSStream) Fetch(ctx context.Context, limit int) ([]StreamMessage, error) {
	if limit <= 0 {
		limit = 1000
	}

	consumer, err := s.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create replay consumer: %w", err)
	}

	batch, err := consumer.Fetch(limit, jetstream.FetchMaxWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []StreamMessage
	for msg := range batch.Messages() {
		metadata, err := msg.Metadata()
		if err != nil {
			continue
		}
		messages = append(messages, StreamMessage{
			Data:      msg.Data(),
			Sequence:  metadata.Sequence.Stream,
			Timestamp: metadata.Timestamp.UnixNano(),
		})
	}

	return messages, batch.Error()
}

// SubscribeStream consumes new messages through the durable consumer. Each
// message is acked once handler returns nil and nak'ed for redelivery otherwise.
func (s *NATSStream) SubscribeStream(ctx context.Context, handler StreamHandlerFunc) error {
	cc, err := s.consumer.Consume(func(msg jetstream.Msg) {
		m := StreamMessage{Data: msg.Data()}
		if metadata, err := msg.Metadata(); err == nil {
			m.Sequence = metadata.Sequence.Stream
			m.Timestamp = metadata.Timestamp.UnixNano()
		}
		if err := handler(ctx, m); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}
	s.cc = cc
	return nil
}

func (s *NATSStream) Close() error {
	if s.cc != nil {
		s.cc.Stop()
	}
	s.conn.Close()
	return nil
}
