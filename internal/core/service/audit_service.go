package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

// AuditAppender is the fire-and-forget append path (the sharded dispatcher).
// Enqueue must not block beyond channel capacity and must never return an
// error to the caller; append failures are handled inside the appender.
type AuditAppender interface {
	Enqueue(record *domain.AuditRecord)
}

// AuditService builds sanitized audit records and hands them to the appender.
// It is the single owner of the audit append path: failure to persist a record
// is absorbed here and in the appender, never surfaced to the business call
// that triggered it.
type AuditService struct {
	appender AuditAppender
	log      zerolog.Logger
}

func NewAuditService(appender AuditAppender, log zerolog.Logger) *AuditService {
	return &AuditService{appender: appender, log: log}
}

func (s *AuditService) LogCreate(ctx context.Context, actorID, resourceType, resourceID string, after map[string]any, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionCreate, resourceType, resourceID, &domain.AuditChanges{
		After: Sanitize(after),
	}, meta, details)
}

func (s *AuditService) LogUpdate(ctx context.Context, actorID, resourceType, resourceID string, before, after map[string]any, meta domain.RequestMeta, details string) {
	sanitizedBefore := Sanitize(before)
	sanitizedAfter := Sanitize(after)
	s.submit(actorID, domain.AuditActionUpdate, resourceType, resourceID, &domain.AuditChanges{
		Before:        sanitizedBefore,
		After:         sanitizedAfter,
		ChangedFields: ChangedFields(sanitizedBefore, sanitizedAfter),
	}, meta, details)
}

func (s *AuditService) LogDelete(ctx context.Context, actorID, resourceType, resourceID string, before map[string]any, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionDelete, resourceType, resourceID, &domain.AuditChanges{
		Before: Sanitize(before),
	}, meta, details)
}

func (s *AuditService) LogLogin(ctx context.Context, actorID string, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionLogin, "session", "", nil, meta, details)
}

func (s *AuditService) LogLogout(ctx context.Context, actorID string, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionLogout, "session", "", nil, meta, details)
}

func (s *AuditService) LogRegister(ctx context.Context, actorID string, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionRegister, "user", actorID, nil, meta, details)
}

func (s *AuditService) LogAccessDenied(ctx context.Context, actorID, resourceType string, meta domain.RequestMeta, details string) {
	s.submit(actorID, domain.AuditActionAccessDenied, resourceType, "", nil, meta, details)
}

func (s *AuditService) LogSystem(ctx context.Context, resourceType string, details string) {
	s.submit("system", domain.AuditActionSystem, resourceType, "", nil, domain.RequestMeta{}, details)
}

func (s *AuditService) submit(actorID string, action domain.AuditAction, resourceType, resourceID string, changes *domain.AuditChanges, meta domain.RequestMeta, details string) {
	record := &domain.AuditRecord{
		ActorID:       actorID,
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		Changes:       changes,
		ClientAddress: meta.ClientAddress,
		ClientAgent:   meta.ClientAgent,
		Timestamp:     time.Now().UTC(),
		Details:       details,
	}

	s.appender.Enqueue(record)

	s.log.Debug().
		Str("actor", actorID).
		Str("action", string(action)).
		Str("resource", resourceType).
		Msg("audit record enqueued")
}

// secretFragments are matched case-insensitively against field names; any
// matching field is stripped before storage, at every nesting level.
var secretFragments = []string{"password", "token", "hash", "secret"}

// Sanitize returns a deep copy of payload with secret-named fields removed.
// The input is never modified.
func Sanitize(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		if isSecretField(key) {
			continue
		}
		out[key] = sanitizeValue(value)
	}
	return out
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return Sanitize(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

func isSecretField(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range secretFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// ChangedFields lists field paths that differ between before and after,
// covering top-level fields and one nested level ("parent.child"). Deeper
// nesting is reported at the nested-map granularity.
func ChangedFields(before, after map[string]any) []string {
	var changed []string
	seen := make(map[string]struct{}, len(before)+len(after))

	for key := range before {
		seen[key] = struct{}{}
	}
	for key := range after {
		seen[key] = struct{}{}
	}

	for key := range seen {
		b, inBefore := before[key]
		a, inAfter := after[key]
		if !inBefore || !inAfter {
			changed = append(changed, key)
			continue
		}

		bMap, bIsMap := b.(map[string]any)
		aMap, aIsMap := a.(map[string]any)
		if bIsMap && aIsMap {
			changed = append(changed, nestedChanges(key, bMap, aMap)...)
			continue
		}

		if !equalValue(b, a) {
			changed = append(changed, key)
		}
	}

	return changed
}

func nestedChanges(parent string, before, after map[string]any) []string {
	var changed []string
	seen := make(map[string]struct{}, len(before)+len(after))
	for key := range before {
		seen[key] = struct{}{}
	}
	for key := range after {
		seen[key] = struct{}{}
	}
	for key := range seen {
		b, inBefore := before[key]
		a, inAfter := after[key]
		if !inBefore || !inAfter || !equalValue(b, a) {
			changed = append(changed, parent+"."+key)
		}
	}
	return changed
}

// equalValue compares leaf values through their string rendering, which is
// sufficient for JSON-shaped payloads (scalars, maps, slices of scalars).
func equalValue(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
