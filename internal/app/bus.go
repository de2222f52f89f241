package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/event"
)

const kitchenStreamName = "KITCHEN_EVENTS"

// Bus groups the NATS connections. A disabled bus hands out nil publishers,
// which turns every event publish into a no-op.
type Bus struct {
	publisher  *pkg.NATSPublisher
	subscriber *pkg.NATSSubscriber
	stream     *pkg.NATSStream
}

func ConnectBus(ctx context.Context, cfg *config.Config, log logger.Logger) (*Bus, error) {
	b := &Bus{}
	if !cfg.GetBool("nats.enabled") {
		log.Info("nats disabled, events will not be published")
		return b, nil
	}

	url := cfg.GetStringOrDef("nats.url", "nats://localhost:4222")

	var err error
	b.publisher, err = pkg.NewNATSPublisher(url)
	if err != nil {
		return nil, fmt.Errorf("cannot connect NATS publisher: %w", err)
	}

	b.subscriber, err = pkg.NewNATSSubscriber(url)
	if err != nil {
		_ = b.Close(ctx)
		return nil, fmt.Errorf("cannot connect NATS subscriber: %w", err)
	}

	if cfg.GetBool("nats.stream.enabled") {
		b.stream, err = pkg.NewNATSStream(ctx, pkg.NATSStreamConfig{
			URL:          url,
			StreamName:   kitchenStreamName,
			Subjects:     []string{event.KitchenSubjects},
			ConsumerName: consumerName(),
			MaxAge:       cfg.GetDuration("nats.stream.max_age", 0),
		})
		if err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("cannot open kitchen stream: %w", err)
		}
	}

	log.Info("connected to NATS", "url", url, "stream", b.stream != nil)
	return b, nil
}

func consumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "dinein-feed"
	}
	return "dinein-feed-" + host
}

func (b *Bus) Publisher() pkg.Publisher {
	if b.publisher == nil {
		return nil
	}
	return b.publisher
}

// KitchenPublisher publishes through JetStream when the stream is on so
// kitchen events are retained for feed replay.
func (b *Bus) KitchenPublisher() pkg.Publisher {
	if b.stream != nil {
		return b.stream
	}
	return b.Publisher()
}

func (b *Bus) Subscriber() pkg.Subscriber {
	if b.subscriber == nil {
		return nil
	}
	return b.subscriber
}

func (b *Bus) Stream() pkg.Stream {
	if b.stream == nil {
		return nil
	}
	return b.stream
}

func (b *Bus) Close(context.Context) error {
	var errs []error
	if b.stream != nil {
		errs = append(errs, b.stream.Close())
	}
	if b.subscriber != nil {
		errs = append(errs, b.subscriber.Close())
	}
	if b.publisher != nil {
		errs = append(errs, b.publisher.Close())
	}
	return errors.Join(errs...)
}
