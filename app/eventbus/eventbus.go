// Package eventbus publishes domain events after workflow transactions commit.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Bus adapts a watermill publisher to Publisher.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New connects to NATS JetStream when natsURL is set and falls back to an
// in-process gochannel otherwise.
func New(natsURL string, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if natsURL == "" {
		return NewInProcess(logger), nil
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL: natsURL,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
				nc.Timeout(30 * time.Second),
				nc.ReconnectWait(1 * time.Second),
			},
			Marshaler: &nats.NATSMarshaler{},
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: true,
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	logger.Info("Domain events publish to NATS JetStream", attr.String("url", natsURL))
	return &Bus{publisher: publisher, logger: logger}, nil
}

// NewInProcess returns a bus backed by a gochannel pub/sub. Subscribe works
// only on in-process buses.
func NewInProcess(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &Bus{publisher: ch, subscriber: ch, logger: logger}
}

// Publish encodes payload as JSON and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("occurred_at", time.Now().UTC().Format(time.RFC3339Nano))

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the messages published on topic. It fails on a NATS bus.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b.subscriber == nil {
		return nil, fmt.Errorf("subscribe %s: bus has no in-process subscriber", topic)
	}
	return b.subscriber.Subscribe(ctx, topic)
}

func (b *Bus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}

// Notify publishes and logs a failure instead of returning it. Domain events
// are emitted after commit, so a failed publish must not fail the request.
func Notify(ctx context.Context, p Publisher, logger *slog.Logger, topic string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, payload); err != nil && logger != nil {
		logger.WarnContext(ctx, "Failed to publish domain event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

var _ Publisher = (*Bus)(nil)
