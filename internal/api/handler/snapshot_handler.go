package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

// SnapshotHandler exposes the operator control surface over the snapshot
// engine and catalog. All routes sit behind the admin allow-list.
type SnapshotHandler struct {
	engine  ports.SnapshotEngine
	catalog ports.SnapshotCatalog
	audit   ports.AuditRecorder
}

func NewSnapshotHandler(engine ports.SnapshotEngine, catalog ports.SnapshotCatalog, audit ports.AuditRecorder) *SnapshotHandler {
	return &SnapshotHandler{engine: engine, catalog: catalog, audit: audit}
}

type snapshotListResponse struct {
	Snapshots []domain.SnapshotArtifact `json:"snapshots"`
	Count     int                       `json:"count"`
}

// Create handles POST /v1/admin/snapshots, a manual snapshot trigger.
//
// @Summary      Trigger a snapshot run now
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.SnapshotArtifact
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/admin/snapshots [post]
func (h *SnapshotHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	artifact, err := h.engine.TriggerNow(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotInProgress) {
			return echo.NewHTTPError(http.StatusConflict, "already running")
		}
		return err
	}

	h.audit.LogSystem(c.Request().Context(), "snapshot", "manual snapshot triggered by "+identity.UserID)
	return c.JSON(http.StatusCreated, artifact)
}

// List handles GET /v1/admin/snapshots.
//
// @Summary      List snapshot artifacts, newest first
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  snapshotListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/snapshots [get]
func (h *SnapshotHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	artifacts, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshotListResponse{Snapshots: artifacts, Count: len(artifacts)})
}

// Delete handles DELETE /v1/admin/snapshots/:id.
//
// @Summary      Delete one snapshot artifact
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Artifact id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/snapshots/{id} [delete]
func (h *SnapshotHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.audit.LogDelete(c.Request().Context(), identity.UserID, "snapshot", id, nil, requestMeta(c), "artifact removed from catalog")
	return c.JSON(http.StatusOK, messageResponse{Message: "snapshot deleted"})
}

// StartScheduler handles POST /v1/admin/scheduler/start. Starting an already
// running scheduler is a no-op returning the current status.
//
// @Summary      Start (or re-start) the snapshot scheduler
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SchedulerStatus
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/scheduler/start [post]
func (h *SnapshotHandler) StartScheduler(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	status := h.engine.Start()
	h.audit.LogSystem(c.Request().Context(), "scheduler", "scheduler start requested by "+identity.UserID)
	return c.JSON(http.StatusOK, status)
}

// SchedulerStatus handles GET /v1/admin/scheduler/status.
//
// @Summary      Report the snapshot scheduler status
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SchedulerStatus
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/scheduler/status [get]
func (h *SnapshotHandler) SchedulerStatus(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.engine.Status())
}
