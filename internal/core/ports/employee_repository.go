package ports

import (
	"context"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

// EmployeeRepository defines persistence operations for the employee registry.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// FindByIDs resolves many employees in one round trip, keyed by id.
	// Unknown ids are simply absent from the result map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Employee, error)
	// ListByDepartments returns employees whose department is in departments.
	// An empty slice means no department restriction.
	ListByDepartments(ctx context.Context, departments []string) ([]*domain.Employee, error)
}
