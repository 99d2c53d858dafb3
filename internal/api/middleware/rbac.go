package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/api/metrics"
	"github.com/staffhub/workforce-system/internal/core/domain"
)

// AccessAuditor records requests rejected by the role check so denied access
// attempts show up in the audit trail.
type AccessAuditor interface {
	LogAccessDenied(ctx context.Context, actorID, resourceType string, meta domain.RequestMeta, details string)
}

// RBAC enforces role-based access control over the closed role set. An empty
// allow-list admits any authenticated caller. Rejections surface as domain
// sentinels for the central error handler to map.
func RBAC(audit AccessAuditor, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(ContextIdentity).(domain.Identity)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if len(allowed) == 0 {
				return next(c)
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				if audit != nil {
					audit.LogAccessDenied(c.Request().Context(), identity.UserID, c.Path(), domain.RequestMeta{
						ClientAddress: c.RealIP(),
						ClientAgent:   c.Request().UserAgent(),
					}, "role "+string(identity.Role)+" not in the allow-list")
				}
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
