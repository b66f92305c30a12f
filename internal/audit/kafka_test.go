package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hris-admin/internal/audit"
	"hris-admin/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_PublishRecordDispatched(t *testing.T) {
	event := events.RecordDispatchedEvent{
		EventID:    "ev-1",
		EventType:  "employee.deleted",
		Module:     "employee",
		Action:     "Delete",
		RecordID:   "e1",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("writes keyed message", func(t *testing.T) {
		w := &fakeWriter{}
		p := audit.NewKafkaPublisher(w, "")

		require.NoError(t, p.PublishRecordDispatched(context.Background(), event))

		require.Len(t, w.msgs, 1)
		msg := w.msgs[0]
		assert.Equal(t, events.RecordDispatchedTopic, msg.Topic)
		assert.Equal(t, "e1", string(msg.Key))
		assert.Equal(t, "employee.deleted", string(msg.Headers[0].Value))

		var decoded events.RecordDispatchedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, event, decoded)
	})

	t.Run("create without id is keyed by event id", func(t *testing.T) {
		w := &fakeWriter{}
		p := audit.NewKafkaPublisher(w, "custom.topic")
		created := event
		created.RecordID = ""

		require.NoError(t, p.PublishRecordDispatched(context.Background(), created))

		assert.Equal(t, "custom.topic", w.msgs[0].Topic)
		assert.Equal(t, "ev-1", string(w.msgs[0].Key))
	})

	t.Run("writer error is returned", func(t *testing.T) {
		p := audit.NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, "")

		assert.Error(t, p.PublishRecordDispatched(context.Background(), event))
	})
}
