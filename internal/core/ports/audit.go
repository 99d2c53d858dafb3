package ports

import (
	"context"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

// AuditRecorder is the append-only audit trail entry point used by handlers
// and services after an authorized action completes.
//
// Contract: every Log method is non-blocking and never returns an error to
// the caller. A failed durable append is logged and counted internally; the
// business operation that triggered it must not be affected. Writes issued by
// one actor are appended in the order they were issued; there is no ordering
// guarantee across actors.
type AuditRecorder interface {
	LogCreate(ctx context.Context, actorID, resourceType, resourceID string, after map[string]any, meta domain.RequestMeta, details string)
	LogUpdate(ctx context.Context, actorID, resourceType, resourceID string, before, after map[string]any, meta domain.RequestMeta, details string)
	LogDelete(ctx context.Context, actorID, resourceType, resourceID string, before map[string]any, meta domain.RequestMeta, details string)
	LogLogin(ctx context.Context, actorID string, meta domain.RequestMeta, details string)
	LogLogout(ctx context.Context, actorID string, meta domain.RequestMeta, details string)
	LogRegister(ctx context.Context, actorID string, meta domain.RequestMeta, details string)
	LogAccessDenied(ctx context.Context, actorID, resourceType string, meta domain.RequestMeta, details string)
	LogSystem(ctx context.Context, resourceType string, details string)
}

// AuditRepository is the durable append path. Append must be atomic per
// record; no cross-record transactional guarantees are required.
type AuditRepository interface {
	Append(ctx context.Context, record *domain.AuditRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}
