package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/events"
)

// AuditWorker records user mutations as structured log entries.
type AuditWorker struct {
	logger *zap.Logger
}

// NewAuditWorker creates the worker.
func NewAuditWorker(logger *zap.Logger) *AuditWorker {
	return &AuditWorker{logger: logger}
}

// Register subscribes the worker to user mutation events.
func (w *AuditWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventUserCreated, w.handle)
	dispatcher.Subscribe(events.EventUserUpdated, w.handle)
	dispatcher.Subscribe(events.EventUserDeleted, w.handle)
}

func (w *AuditWorker) handle(ctx context.Context, event events.Event) error {
	w.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
