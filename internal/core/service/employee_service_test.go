package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.nextID++
	created := *e
	created.ID = "e" + strconv.Itoa(r.nextID)
	r.employees[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	out := *e
	return &out, nil
}

func (r *stubEmployeeRepo) FindAll(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.employees[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	stored := *e
	r.employees[e.ID] = &stored
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func TestEmployeeService_Create_DefaultsToActive(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	e, err := svc.Create(context.Background(), ports.EmployeeInput{FullName: "Alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Status != domain.EmployeeActive {
		t.Fatalf("status = %s, want active", e.Status)
	}
	if e.ID == "" {
		t.Fatalf("id not assigned")
	}
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	if _, err := svc.Create(context.Background(), ports.EmployeeInput{Email: "a@example.com"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
}

func TestEmployeeService_Update_ReturnsBeforeAndAfter(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo)

	created, err := svc.Create(context.Background(), ports.EmployeeInput{FullName: "Alice", Email: "a@example.com", Position: "Engineer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before, after, err := svc.Update(context.Background(), created.ID, ports.EmployeeInput{Status: "on_leave"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if before.Status != domain.EmployeeActive {
		t.Fatalf("before state should carry the previous status, got %s", before.Status)
	}
	if after.Status != domain.EmployeeOnLeave {
		t.Fatalf("after state = %s, want on_leave", after.Status)
	}
	if after.Position != "Engineer" {
		t.Fatalf("unset fields must be preserved on partial update")
	}
}

func TestEmployeeService_UpdateMissing(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	if _, _, err := svc.Update(context.Background(), "ghost", ports.EmployeeInput{FullName: "X"}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Delete_ReturnsDeletedState(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo)

	created, err := svc.Create(context.Background(), ports.EmployeeInput{FullName: "Alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.FullName != "Alice" {
		t.Fatalf("deleted state should carry the removed record")
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("record should be gone, got %v", err)
	}
}
