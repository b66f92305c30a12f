package events

import (
	"context"
	"time"

	"hris-admin/internal/shared/action"
	"hris-admin/internal/shared/contextutil"

	"github.com/google/uuid"
)

const RecordDispatchedTopic = "hr.admin.record.dispatched.v1"

// RecordDispatchedEvent is emitted after the backend accepted a create,
// update or delete issued from the console.
type RecordDispatchedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	Module     string    `json:"module"`
	Action     string    `json:"action"`
	RecordID   string    `json:"record_id,omitempty"`
	RecordName string    `json:"record_name,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType builds names such as "department.created".
func EventType(module, pastTense string) string {
	return module + "." + pastTense
}

// NewRecordDispatched stamps a dispatched record with the request id and
// actor carried by ctx.
func NewRecordDispatched(ctx context.Context, module string, a action.Action, id, name string) RecordDispatchedEvent {
	return RecordDispatchedEvent{
		EventID:    uuid.NewString(),
		EventType:  EventType(module, a.PastTense()),
		RequestID:  contextutil.GetRequestID(ctx),
		Module:     module,
		Action:     a.String(),
		RecordID:   id,
		RecordName: name,
		Actor:      contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	}
}
