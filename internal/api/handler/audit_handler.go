package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

const maxAuditPage = 500

// AuditHandler exposes read access to the audit trail for operators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type auditListResponse struct {
	Records []domain.AuditRecord `json:"records"`
	Count   int                  `json:"count"`
}

// Recent handles GET /v1/admin/audit, returning recent records newest first.
//
// @Summary      List recent audit records
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum records to return (default 50, max 500)"
// @Success      200    {object}  auditListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxAuditPage {
		limit = maxAuditPage
	}

	records, err := h.repo.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auditListResponse{Records: records, Count: len(records)})
}
