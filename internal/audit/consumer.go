package audit

import (
	"context"
	"encoding/json"

	"hris-admin/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader the trail consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumeRecordDispatched tails the dispatched-record topic into sink until
// ctx is cancelled. Undecodable messages are committed and skipped.
func ConsumeRecordDispatched(
	ctx context.Context,
	reader MessageReader,
	sink Logger,
	logger *zap.Logger,
) {
	log := logger.Named("audit.consumer.record_dispatched")
	log.Info("record dispatched consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("record dispatched consumer stopped")
				return
			}
			log.Error("fetch record dispatched message failed", zap.Error(err))
			continue
		}

		var event events.RecordDispatchedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode record dispatched event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		sink.Log(ctx, entryFor(event))

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit record dispatched message failed", zap.Error(err))
			continue
		}
	}
}

func entryFor(event events.RecordDispatchedEvent) Log {
	return Log{
		Action:  event.EventType,
		Message: event.Module + " " + event.RecordID + " " + event.Action,
		Meta: map[string]any{
			"event_id":    event.EventID,
			"request_id":  event.RequestID,
			"record_id":   event.RecordID,
			"record_name": event.RecordName,
			"actor":       event.Actor,
			"occurred_at": event.OccurredAt,
		},
	}
}
