package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

// ReportService implements the daily report upsert and query use cases.
type ReportService struct {
	reports   ports.ReportRepository
	employees ports.EmployeeRepository
	users     ports.AuthRepository
	log       zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, employees ports.EmployeeRepository, users ports.AuthRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, employees: employees, users: users, log: log}
}

// Submit records one sales entry for (employee, calendar day, leader). A
// repeated submission for the same key overwrites the stored metrics instead
// of creating a second row. The returned bool is true when a new report was
// created. The employee and leader name snapshots are refreshed from the
// live records on every write.
func (s *ReportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, bool, error) {
	employee, err := s.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, false, err
	}

	leader, err := s.users.FindByID(ctx, input.CallerUserID)
	if err != nil {
		return nil, false, err
	}

	day, err := domain.CanonicalDay(input.Date)
	if err != nil {
		return nil, false, err
	}

	saleCount := input.SaleCount
	if saleCount < 0 {
		saleCount = 0
	}
	saleAmount := input.SaleAmount
	if saleAmount < 0 {
		saleAmount = 0
	}

	report := &domain.Report{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Date:         day,
		SaleCount:    saleCount,
		SaleAmount:   saleAmount,
		Description:  input.Description,
		Comments:     input.Comments,
		LeaderID:     leader.ID,
		LeaderName:   leader.Name,
		Department:   input.Department,
		UpdatedAt:    time.Now().UTC(),
	}

	stored, created, err := s.reports.Upsert(ctx, report)
	if err != nil {
		s.log.Error().Err(err).Str("employee_id", employee.ID).Str("leader_id", leader.ID).Msg("report upsert failed")
		return nil, false, err
	}

	s.log.Info().
		Str("report_id", stored.ID).
		Str("employee_id", stored.EmployeeID).
		Str("leader_id", stored.LeaderID).
		Time("date", stored.Date).
		Bool("created", created).
		Msg("report submitted")

	return stored, created, nil
}

// List returns the reports visible to the caller. A leader is always scoped
// to their own submissions and every supplied filter is ignored; a boss gets
// the conjunction of the filters they supply. Results come back most recent
// date first with employee names resolved against the live registry.
func (s *ReportService) List(ctx context.Context, input ports.ListReportsInput) ([]*domain.Report, error) {
	var filter ports.ListReportsFilter
	employeeSearch := ""

	if input.Role == domain.RoleBoss {
		filter.Department = input.Department
		filter.LeaderSearch = input.LeaderSearch
		employeeSearch = strings.TrimSpace(input.EmployeeSearch)

		if input.DateFrom != "" {
			from, err := domain.DayStart(input.DateFrom)
			if err != nil {
				return nil, err
			}
			filter.DateFrom = from
		}
		if input.DateTo != "" {
			to, err := domain.DayEnd(input.DateTo)
			if err != nil {
				return nil, err
			}
			filter.DateTo = to
		}
	} else {
		// Leaders (and anything that is not a boss) only ever see their own
		// submissions, keyed by the stable user id.
		filter.LeaderID = input.CallerUserID
	}

	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resolved := s.resolveEmployeeNames(ctx, reports)

	if employeeSearch != "" {
		reports = filterByEmployeeName(reports, resolved, employeeSearch)
	}

	leaderNames := s.resolveLeaderNames(ctx, reports)

	for _, r := range reports {
		name := resolved[r.ID]
		if name == "" {
			name = domain.EmployeeNamePlaceholder
		}
		r.EmployeeName = name

		if name, ok := leaderNames[r.LeaderID]; ok && name != "" {
			r.LeaderName = name
		}
	}

	return reports, nil
}

// resolveEmployeeNames maps report id to the display name for its employee:
// the live registry name when the reference still resolves, otherwise the
// snapshot stored on the report.
func (s *ReportService) resolveEmployeeNames(ctx context.Context, reports []*domain.Report) map[string]string {
	ids := make([]string, 0, len(reports))
	seen := make(map[string]struct{}, len(reports))
	for _, r := range reports {
		if _, ok := seen[r.EmployeeID]; ok {
			continue
		}
		seen[r.EmployeeID] = struct{}{}
		ids = append(ids, r.EmployeeID)
	}

	live, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		// Name resolution is display-only; fall back to snapshots.
		s.log.Warn().Err(err).Msg("employee lookup failed, using name snapshots")
		live = nil
	}

	resolved := make(map[string]string, len(reports))
	for _, r := range reports {
		if e, ok := live[r.EmployeeID]; ok && e.Name != "" {
			resolved[r.ID] = e.Name
			continue
		}
		resolved[r.ID] = r.EmployeeName
	}
	return resolved
}

// resolveLeaderNames maps leader id to the current display name from the
// credential store. Leaders are few, so per-id lookups are fine; a missing or
// failed lookup leaves the stored snapshot in place.
func (s *ReportService) resolveLeaderNames(ctx context.Context, reports []*domain.Report) map[string]string {
	names := make(map[string]string)
	for _, r := range reports {
		if _, ok := names[r.LeaderID]; ok {
			continue
		}
		leader, err := s.users.FindByID(ctx, r.LeaderID)
		if err != nil {
			names[r.LeaderID] = ""
			continue
		}
		names[r.LeaderID] = leader.Name
	}
	return names
}

func filterByEmployeeName(reports []*domain.Report, resolved map[string]string, search string) []*domain.Report {
	needle := strings.ToLower(search)
	matched := make([]*domain.Report, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(resolved[r.ID]), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}
