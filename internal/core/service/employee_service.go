package service

import (
	"context"
	"time"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

type employeeService struct {
	repo ports.EmployeeRepository
}

// NewEmployeeService returns an EmployeeService implementation.
func NewEmployeeService(repo ports.EmployeeRepository) ports.EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) Create(ctx context.Context, in ports.EmployeeInput) (*domain.Employee, error) {
	if in.FullName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	status := domain.EmployeeStatus(in.Status)
	if status == "" {
		status = domain.EmployeeActive
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		FullName:   in.FullName,
		Email:      in.Email,
		Position:   in.Position,
		Department: in.Department,
		Status:     status,
		TenantID:   in.TenantID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.repo.Create(ctx, e)
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.FindAll(ctx)
}

func (s *employeeService) Update(ctx context.Context, id string, in ports.EmployeeInput) (*domain.Employee, *domain.Employee, error) {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	after := *before
	if in.FullName != "" {
		after.FullName = in.FullName
	}
	if in.Email != "" {
		after.Email = in.Email
	}
	if in.Position != "" {
		after.Position = in.Position
	}
	if in.Department != "" {
		after.Department = in.Department
	}
	if in.Status != "" {
		after.Status = domain.EmployeeStatus(in.Status)
	}
	after.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &after); err != nil {
		return nil, nil, err
	}
	return before, &after, nil
}

func (s *employeeService) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}
