package ports

import (
	"context"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

// EmployeeInput is the service-level DTO for creating or updating an employee.
type EmployeeInput struct {
	FullName   string
	Email      string
	Position   string
	Department string
	Status     string
	TenantID   string
}

type EmployeeService interface {
	Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	// Update returns both the previous and the updated state so callers can
	// hand them to the audit trail.
	Update(ctx context.Context, id string, in EmployeeInput) (before, after *domain.Employee, err error)
	Delete(ctx context.Context, id string) (*domain.Employee, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}
