package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/workforce-system/internal/core/ports"
)

// EmployeeHandler exposes the protected employee record surface. Every
// mutation passes the access gate first and leaves an audit record behind.
type EmployeeHandler struct {
	service ports.EmployeeService
	audit   ports.AuditRecorder
}

func NewEmployeeHandler(service ports.EmployeeService, audit ports.AuditRecorder) *EmployeeHandler {
	return &EmployeeHandler{service: service, audit: audit}
}

// Create handles POST /v1/employees.
//
// @Summary      Create an employee record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee details"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	employee, err := h.service.Create(c.Request().Context(), toEmployeeInput(req, identity.TenantID))
	if err != nil {
		return err
	}

	h.audit.LogCreate(c.Request().Context(), identity.UserID, "employee", employee.ID, employeeState(employee), requestMeta(c), "")
	return c.JSON(http.StatusCreated, employee)
}

// List handles GET /v1/employees.
//
// @Summary      List employee records
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  employeeListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	employees, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeListResponse{Employees: employees, Count: len(employees)})
}

// Get handles GET /v1/employees/:id.
//
// @Summary      Fetch one employee record
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	employee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Update handles PUT /v1/employees/:id.
//
// @Summary      Update an employee record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      employeeUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req employeeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	before, after, err := h.service.Update(c.Request().Context(), c.Param("id"), toEmployeeUpdateInput(req))
	if err != nil {
		return err
	}

	h.audit.LogUpdate(c.Request().Context(), identity.UserID, "employee", after.ID, employeeState(before), employeeState(after), requestMeta(c), "")
	return c.JSON(http.StatusOK, after)
}

// Delete handles DELETE /v1/employees/:id.
//
// @Summary      Delete an employee record
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	h.audit.LogDelete(c.Request().Context(), identity.UserID, "employee", deleted.ID, employeeState(deleted), requestMeta(c), "")
	return c.JSON(http.StatusOK, messageResponse{Message: "employee deleted"})
}
