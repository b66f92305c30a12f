// Package notification collects the failures the console must show to the
// user instead of silently keeping stale screens.
package notification

import (
	"context"
	"slices"
	"sync"
	"time"

	"hris-admin/internal/shared/apperror"
	"hris-admin/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultLimit = 50

type Level string

const LevelError Level = "error"

type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Module    string    `json:"module"`
	Operation string    `json:"operation"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier is what the list modules report failures to.
type Notifier interface {
	Failed(ctx context.Context, module, operation string, err error)
}

// Center keeps the most recent notifications, newest last.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	limit  int
	now    func() time.Time
	logger *zap.Logger
}

func NewCenter(limit int, logger ...*zap.Logger) *Center {
	l := zap.L().Named("notification.center")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.center")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Center{limit: limit, now: time.Now, logger: l}
}

func (c *Center) Failed(ctx context.Context, module, operation string, err error) {
	if err == nil {
		return
	}
	httpErr := apperror.ToHTTP(err)
	n := Notification{
		ID:        uuid.NewString(),
		Level:     LevelError,
		Module:    module,
		Operation: operation,
		Code:      httpErr.Code,
		Message:   httpErr.Message,
		RequestID: contextutil.GetRequestID(ctx),
		At:        c.now().UTC(),
	}
	if detail, ok := httpErr.Details.(string); ok {
		n.Detail = detail
	}

	contextutil.GetLogger(ctx, c.logger).Warn("operation failed",
		zap.String("module", module),
		zap.String("operation", operation),
		zap.String("code", n.Code),
		zap.Error(err),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
	if over := len(c.items) - c.limit; over > 0 {
		c.items = slices.Delete(c.items, 0, over)
	}
}

// Recent returns a copy of the retained notifications, oldest first.
func (c *Center) Recent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Dismiss removes one notification and reports whether it existed.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return true
}

// Clear drops every notification.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
