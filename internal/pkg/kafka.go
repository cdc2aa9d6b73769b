package pkg

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// NotificationProducer publishes notification events keyed by the recipient,
// so all events for one user land on the same partition in order.
type NotificationProducer struct {
	writer *kafka.Writer
}

func NewNotificationProducer(cfg KafkaConfig) *NotificationProducer {
	return &NotificationProducer{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}}
}

// Publish sends one event payload for the given recipient.
func (p *NotificationProducer) Publish(ctx context.Context, recipientID uint64, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(recipientID, 10)),
		Value: payload,
	})
}

func (p *NotificationProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
