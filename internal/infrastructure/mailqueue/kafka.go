// Package mailqueue hands outbound mail to the delivery pipeline.
package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// KafkaPublisher writes each mail as a JSON message keyed by recipient, so
// a downstream mail sender sees one recipient's messages in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher dials the first broker to fail fast on a bad address.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}

	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka dial: %w", err)
	}
	_ = conn.Close()

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

func (p *KafkaPublisher) Send(ctx context.Context, msg domain.MailMessage) error {
	m, err := encode(msg)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, m); err != nil {
		return fmt.Errorf("publish mail: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(msg domain.MailMessage) (kafka.Message, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode mail: %w", err)
	}
	return kafka.Message{
		Key:   []byte(msg.To),
		Value: value,
		Headers: []kafka.Header{
			{Key: "template", Value: []byte(msg.Template)},
		},
		Time: time.Now().UTC(),
	}, nil
}
