package handler

import (
	"encoding/json"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

func toEmployeeInput(r employeeRequest, tenantID string) ports.EmployeeInput {
	return ports.EmployeeInput{
		FullName:   r.FullName,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
		Status:     r.Status,
		TenantID:   tenantID,
	}
}

func toEmployeeUpdateInput(r employeeUpdateRequest) ports.EmployeeInput {
	return ports.EmployeeInput{
		FullName:   r.FullName,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
		Status:     r.Status,
	}
}

// employeeState renders an employee as the generic map shape the audit trail
// stores for before/after snapshots.
func employeeState(e *domain.Employee) map[string]any {
	if e == nil {
		return nil
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var state map[string]any
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil
	}
	return state
}
