package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

const DefaultSearchEventsTopic = "search-events"

// SearchEventPublisher announces recorded searches to downstream consumers
// such as analytics.
type SearchEventPublisher interface {
	PublishSearch(ctx context.Context, event models.SearchEvent) error
	Close() error
}

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes search events to a Kafka topic, keyed by the
// normalized query so events for one query stay ordered.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewSearchEventPublisher returns a Kafka publisher when brokers are
// configured and a no-op publisher otherwise.
func NewSearchEventPublisher(cfg config.KafkaConfig, logger *logrus.Logger) SearchEventPublisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, search events are not published")
		return NopPublisher{}
	}

	topic := cfg.SearchEventsTopic
	if topic == "" {
		topic = DefaultSearchEventsTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.WithError(err).WithField("messages", len(messages)).Warn("Failed to deliver search events to Kafka")
			}
		},
	}

	return newKafkaPublisher(writer, topic, cfg.WriteTimeout, logger)
}

func newKafkaPublisher(writer messageWriter, topic string, timeout time.Duration, logger *logrus.Logger) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: writer, topic: topic, timeout: timeout, logger: logger}
}

func (p *KafkaPublisher) PublishSearch(ctx context.Context, event models.SearchEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strings.ToLower(strings.TrimSpace(event.Query))),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "source", Value: []byte(event.Source)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write search event to Kafka: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id": event.ID,
		"topic":    p.topic,
	}).Debug("Search event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishSearch(ctx context.Context, event models.SearchEvent) error { return nil }
func (NopPublisher) Close() error { return nil }
