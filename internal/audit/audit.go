package audit

import (
	"context"

	"hris-admin/internal/events"
)

// Log is a free-form lifecycle record, such as a server shutdown.
type Log struct {
	Action  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Log)
}

// Publisher ships record mutations to the audit trail.
type Publisher interface {
	PublishRecordDispatched(ctx context.Context, event events.RecordDispatchedEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishRecordDispatched(context.Context, events.RecordDispatchedEvent) error {
	return nil
}

// Noop drops every event.
func Noop() Publisher {
	return noopPublisher{}
}
