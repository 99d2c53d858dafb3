package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/api/middleware"
	"github.com/staffhub/workforce-system/internal/core/domain"
)

type stubEngine struct {
	busy     bool
	triggers int
}

func (s *stubEngine) Start() domain.SchedulerStatus {
	return domain.SchedulerStatus{State: domain.SchedulerRunning}
}

func (s *stubEngine) Stop() {}

func (s *stubEngine) TriggerNow(_ context.Context) (*domain.SnapshotArtifact, error) {
	if s.busy {
		return nil, domain.ErrSnapshotInProgress
	}
	s.triggers++
	return &domain.SnapshotArtifact{
		ID:        "20260801T120000.000000000Z",
		CreatedAt: time.Now().UTC(),
		Origin:    domain.SnapshotOriginManual,
		SizeBytes: 1234,
		Status:    domain.SnapshotStatusSuccess,
	}, nil
}

func (s *stubEngine) Status() domain.SchedulerStatus {
	return domain.SchedulerStatus{State: domain.SchedulerRunning, Busy: s.busy}
}

type stubCatalog struct {
	artifacts []domain.SnapshotArtifact
	deleted   []string
}

func (s *stubCatalog) List(_ context.Context) ([]domain.SnapshotArtifact, error) {
	return s.artifacts, nil
}

func (s *stubCatalog) Delete(_ context.Context, id string) error {
	for _, a := range s.artifacts {
		if a.ID == id {
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return domain.ErrArtifactNotFound
}

func adminContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextIdentity, domain.Identity{UserID: "admin1", Role: domain.RoleAdmin})
	return c, rec
}

func TestSnapshotHandler_Create_Manual(t *testing.T) {
	engine := &stubEngine{}
	h := NewSnapshotHandler(engine, &stubCatalog{}, noopAudit{})

	c, rec := adminContext(t, http.MethodPost, "/v1/admin/snapshots")
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if engine.triggers != 1 {
		t.Fatalf("engine not triggered")
	}
	if !strings.Contains(rec.Body.String(), `"origin":"manual"`) {
		t.Fatalf("manual origin missing: %s", rec.Body.String())
	}
}

func TestSnapshotHandler_Create_RejectedWhileRunning(t *testing.T) {
	h := NewSnapshotHandler(&stubEngine{busy: true}, &stubCatalog{}, noopAudit{})

	c, _ := adminContext(t, http.MethodPost, "/v1/admin/snapshots")
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 while a run is in progress, got %v", err)
	}
	if he.Message != "already running" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestSnapshotHandler_Delete_MissingArtifact(t *testing.T) {
	h := NewSnapshotHandler(&stubEngine{}, &stubCatalog{}, noopAudit{})

	c, _ := adminContext(t, http.MethodDelete, "/v1/admin/snapshots/nope")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.Delete(c); err != domain.ErrArtifactNotFound {
		t.Fatalf("expected ErrArtifactNotFound to propagate, got %v", err)
	}
}

func TestSnapshotHandler_Delete_Existing(t *testing.T) {
	catalog := &stubCatalog{artifacts: []domain.SnapshotArtifact{{ID: "a1"}}}
	h := NewSnapshotHandler(&stubEngine{}, catalog, noopAudit{})

	c, rec := adminContext(t, http.MethodDelete, "/v1/admin/snapshots/a1")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(catalog.deleted) != 1 || catalog.deleted[0] != "a1" {
		t.Fatalf("expected exactly a1 deleted, got %v", catalog.deleted)
	}
}

func TestSnapshotHandler_SchedulerStatus(t *testing.T) {
	h := NewSnapshotHandler(&stubEngine{}, &stubCatalog{}, noopAudit{})

	c, rec := adminContext(t, http.MethodGet, "/v1/admin/scheduler/status")
	if err := h.SchedulerStatus(c); err != nil {
		t.Fatalf("status: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"state":"running"`) {
		t.Fatalf("scheduler state missing: %s", rec.Body.String())
	}
}
