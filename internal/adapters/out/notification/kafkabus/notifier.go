// Package kafkabus publishes order notifications to a Kafka topic so that other
// services (push gateways, mailers) can fan them out further. The message key is
// the target room, which keeps every room's events ordered within one partition.
package kafkabus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/adapters/out/notification"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const eventHeader = "event"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Notifier implements ports.Notifier on top of a kafka-go writer.
type Notifier struct {
	writer messageWriter
}

func NewNotifier(writer messageWriter) *Notifier {
	return &Notifier{writer: writer}
}

// NewWriter builds an asynchronous writer for topic. Delivery failures surface
// through the completion callback and are logged, never returned to emitters.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *kafka.Writer {
	log := logger.With("component", "kafkabus", "topic", topic)

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn("failed to deliver notifications", "count", len(messages), "error", err)
			}
		},
	}
}

func (n *Notifier) EmitToUser(ctx context.Context, userID kernel.UUID, event ports.Notification) error {
	return n.publish(ctx, notification.UserRoom(userID), event)
}

func (n *Notifier) EmitToRestaurant(ctx context.Context, restaurantID kernel.UUID, event ports.Notification) error {
	return n.publish(ctx, notification.RestaurantRoom(restaurantID), event)
}

func (n *Notifier) EmitToChannel(ctx context.Context, channel string, event ports.Notification) error {
	return n.publish(ctx, channel, event)
}

// Close flushes pending messages and closes the writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}

func (n *Notifier) publish(ctx context.Context, room string, event ports.Notification) error {
	msg, err := buildMessage(room, event)
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Event, room, err)
	}
	return nil
}

func buildMessage(room string, event ports.Notification) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal notification event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(room),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventHeader, Value: []byte(event.Event)},
		},
		Time: event.OccurredAt,
	}, nil
}
