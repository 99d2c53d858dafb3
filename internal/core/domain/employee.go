package domain

import "time"

// EmployeeStatus is the lifecycle state of an employee record.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is a staffing record: a person who can be placed on assignments.
// The wider record schema lives outside the integrity core; this carries the
// fields the protected CRUD surface operates on.
type Employee struct {
	ID         string         `json:"id"`
	FullName   string         `json:"full_name"`
	Email      string         `json:"email"`
	Position   string         `json:"position,omitempty"`
	Department string         `json:"department,omitempty"`
	Status     EmployeeStatus `json:"status"`
	TenantID   string         `json:"tenant_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
