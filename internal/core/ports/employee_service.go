package ports

import (
	"context"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

// CreateEmployeeInput carries the data needed to register an employee.
// LeaderUserID comes from the authenticated session, never from the body.
type CreateEmployeeInput struct {
	Name         string
	LeaderUserID string
	Department   string
}

// ListEmployeesInput carries the caller identity for a scoped listing.
type ListEmployeesInput struct {
	Role       string
	Department string
}

// EmployeeService defines use-case operations for the employee registry.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	List(ctx context.Context, input ListEmployeesInput) ([]*domain.Employee, error)
}
