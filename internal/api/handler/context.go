package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/api/middleware"
	"github.com/staffhub/workforce-system/internal/core/domain"
)

// ctxIdentity extracts the Identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing or roleless
// identity means the middleware did not run for this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.ContextIdentity).(domain.Identity)
	if !ok || identity.Role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// requestMeta captures the client network metadata recorded on audit entries.
func requestMeta(c echo.Context) domain.RequestMeta {
	return domain.RequestMeta{
		ClientAddress: c.RealIP(),
		ClientAgent:   c.Request().UserAgent(),
	}
}
