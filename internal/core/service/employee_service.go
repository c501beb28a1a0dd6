package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

// EmployeeService implements the employee registry use cases.
type EmployeeService struct {
	repo  ports.EmployeeRepository
	users ports.AuthRepository
	log   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, users ports.AuthRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, users: users, log: log}
}

// Create registers an employee in the caller's department. The leader's
// display name is resolved from the credential store so the snapshot reflects
// the current name, not whatever the token was minted with.
func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRegistrationDepartment(input.Department) {
		return nil, domain.ErrInvalidInput
	}

	leader, err := s.users.FindByID(ctx, input.LeaderUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee := &domain.Employee{
		Name:       name,
		Department: input.Department,
		LeaderID:   leader.ID,
		LeaderName: leader.Name,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		s.log.Error().Err(err).Str("department", input.Department).Msg("failed to create employee")
		return nil, err
	}

	s.log.Info().Str("employee_id", created.ID).Str("leader_id", leader.ID).Str("department", created.Department).Msg("employee created")
	return created, nil
}

// List returns the employees visible to the caller: a leader sees only their
// department (expanded for umbrella departments), a boss sees everyone.
func (s *EmployeeService) List(ctx context.Context, input ports.ListEmployeesInput) ([]*domain.Employee, error) {
	var departments []string
	if input.Role == domain.RoleLeader {
		departments = domain.VisibleDepartments(input.Department)
	}
	return s.repo.ListByDepartments(ctx, departments)
}
