package ports

import (
	"context"

	"github.com/smartcondominium/portal/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events without blocking the request path.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
