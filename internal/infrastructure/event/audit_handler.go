package event

import (
	"context"

	"github.com/movilshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes every domain event to the structured log. It is a
// wildcard handler; the log is the shop's audit trail for who-did-what
// questions.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes implements shared.EventHandler; empty means all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
