package audit

import (
	"context"
	"time"

	"hris-admin/internal/events"

	"go.uber.org/zap"
)

// StdoutLogger writes audit entries through zap; it serves as both Logger
// and Publisher when no broker is configured.
type StdoutLogger struct {
	logger *zap.Logger
}

func NewStdoutLogger(logger ...*zap.Logger) *StdoutLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutLogger{logger: l}
}

func (l *StdoutLogger) Log(ctx context.Context, entry Log) {
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

func (l *StdoutLogger) PublishRecordDispatched(ctx context.Context, event events.RecordDispatchedEvent) error {
	l.logger.Info("record dispatched",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("request_id", event.RequestID),
		zap.String("record_id", event.RecordID),
		zap.String("actor", event.Actor),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
