package audit

import (
	"context"
	"encoding/json"

	"hris-admin/internal/events"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaPublisher struct {
	writer MessageWriter
	topic  string
}

func NewKafkaPublisher(writer MessageWriter, topic string) Publisher {
	if topic == "" {
		topic = events.RecordDispatchedTopic
	}
	return &kafkaPublisher{writer: writer, topic: topic}
}

func (p *kafkaPublisher) PublishRecordDispatched(ctx context.Context, event events.RecordDispatchedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.RecordID
	if key == "" {
		key = event.EventID
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "module", Value: []byte(event.Module)},
		},
	})
}
