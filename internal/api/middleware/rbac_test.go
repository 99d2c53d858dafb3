package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

type deniedRecorder struct {
	calls    int
	actorID  string
	resource string
	meta     domain.RequestMeta
}

func (r *deniedRecorder) LogAccessDenied(_ context.Context, actorID, resourceType string, meta domain.RequestMeta, _ string) {
	r.calls++
	r.actorID = actorID
	r.resource = resourceType
	r.meta = meta
}

func contextWithRole(e *echo.Echo, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "go-test")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextIdentity, domain.Identity{UserID: "u1", Role: role})
	return c, rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRole(e, domain.RoleHR)

	called := false
	mw := RBAC(nil, domain.RoleAdmin, domain.RoleHR)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for allowed role")
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRole(e, domain.RoleEmployee)

	mw := RBAC(nil, domain.RoleAdmin, domain.RoleHR)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// A forbidden request must leave an ACCESS_DENIED record carrying the actor
// and the request metadata.
func TestRBAC_ForbiddenLeavesAccessDeniedRecord(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRole(e, domain.RoleClient)

	audit := &deniedRecorder{}
	mw := RBAC(audit, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if audit.calls != 1 {
		t.Fatalf("expected one access-denied record, got %d", audit.calls)
	}
	if audit.actorID != "u1" {
		t.Fatalf("record actor = %q, want u1", audit.actorID)
	}
	if audit.meta.ClientAgent != "go-test" {
		t.Fatalf("request metadata not recorded: %+v", audit.meta)
	}
}

// An admitted request must not produce access-denied telemetry.
func TestRBAC_AllowedLeavesNoRecord(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRole(e, domain.RoleAdmin)

	audit := &deniedRecorder{}
	mw := RBAC(audit, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if audit.calls != 0 {
		t.Fatalf("allowed request produced %d access-denied records", audit.calls)
	}
}

func TestRBAC_EveryAllowedRoleProceeds(t *testing.T) {
	e := echo.New()
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee, domain.RoleClient} {
		c, _ := contextWithRole(e, role)

		called := false
		mw := RBAC(nil, domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee, domain.RoleClient)
		handler := mw(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error for %s: %v", role, err)
		}
		if !called {
			t.Fatalf("role %s should have been admitted", role)
		}
	}
}

func TestRBAC_EmptyAllowListAdmitsAuthenticated(t *testing.T) {
	e := echo.New()
	c, _ := contextWithRole(e, domain.RoleClient)

	called := false
	mw := RBAC(nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("empty allow-list should admit any authenticated caller")
	}
}

func TestRBAC_MissingIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RBAC(nil, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without identity, got %v", err)
	}
}
