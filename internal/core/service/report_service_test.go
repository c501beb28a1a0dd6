package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubEmployeeRepo struct {
	byID map[string]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) add(e *domain.Employee) {
	clone := *e
	r.byID[e.ID] = &clone
}

func (r *stubEmployeeRepo) remove(id string) {
	delete(r.byID, id)
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	clone := *e
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("emp_%d", len(r.byID)+1)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Employee, error) {
	out := make(map[string]*domain.Employee, len(ids))
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			clone := *e
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) ListByDepartments(_ context.Context, departments []string) ([]*domain.Employee, error) {
	allowed := make(map[string]struct{}, len(departments))
	for _, d := range departments {
		allowed[d] = struct{}{}
	}
	var out []*domain.Employee
	for _, e := range r.byID {
		if len(departments) > 0 {
			if _, ok := allowed[e.Department]; !ok {
				continue
			}
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) {
	clone := *u
	r.byID[u.ID] = &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	clone := *u
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("user_%d", len(r.byID)+1)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

// stubReportRepo mirrors the Mongo repository: an atomic upsert keyed by
// (employee_id, date, leader_id) plus a filtered, date-descending listing.
type stubReportRepo struct {
	byKey  map[string]*domain.Report
	nextID int
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{byKey: make(map[string]*domain.Report)}
}

func reportKey(employeeID string, date time.Time, leaderID string) string {
	return employeeID + "|" + date.UTC().Format(time.RFC3339) + "|" + leaderID
}

func (r *stubReportRepo) Upsert(_ context.Context, report *domain.Report) (*domain.Report, bool, error) {
	key := reportKey(report.EmployeeID, report.Date, report.LeaderID)
	if existing, ok := r.byKey[key]; ok {
		existing.EmployeeName = report.EmployeeName
		existing.SaleCount = report.SaleCount
		existing.SaleAmount = report.SaleAmount
		existing.Description = report.Description
		existing.Comments = report.Comments
		existing.LeaderName = report.LeaderName
		existing.Department = report.Department
		existing.UpdatedAt = report.UpdatedAt
		clone := *existing
		return &clone, false, nil
	}

	r.nextID++
	clone := *report
	clone.ID = fmt.Sprintf("report_%d", r.nextID)
	clone.CreatedAt = report.UpdatedAt
	r.byKey[key] = &clone
	out := clone
	return &out, true, nil
}

func (r *stubReportRepo) List(_ context.Context, f ports.ListReportsFilter) ([]*domain.Report, error) {
	var matched []*domain.Report
	for _, rep := range r.byKey {
		if f.LeaderID != "" && rep.LeaderID != f.LeaderID {
			continue
		}
		if f.Department != "" && rep.Department != f.Department {
			continue
		}
		if f.LeaderSearch != "" {
			re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(f.LeaderSearch))
			if !re.MatchString(rep.LeaderName) {
				continue
			}
		}
		if !f.DateFrom.IsZero() && rep.Date.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && !rep.Date.Before(f.DateTo) {
			continue
		}
		clone := *rep
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched, nil
}

func (r *stubReportRepo) count() int {
	return len(r.byKey)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func newReportFixture() (*ReportService, *stubReportRepo, *stubEmployeeRepo, *stubUserRepo) {
	reports := newStubReportRepo()
	employees := newStubEmployeeRepo()
	users := newStubUserRepo()

	users.add(&domain.User{ID: "leader_ana", Email: "ana@example.com", Name: "Ana", Role: domain.RoleLeader, Department: domain.DepartmentMedicare, Active: true})
	users.add(&domain.User{ID: "leader_luis", Email: "luis@example.com", Name: "Luis", Role: domain.RoleLeader, Department: domain.DepartmentVida, Active: true})
	users.add(&domain.User{ID: "boss_1", Email: "boss@example.com", Name: "Marta", Role: domain.RoleBoss, Department: domain.DepartmentAll, Active: true})

	employees.add(&domain.Employee{ID: "E1", Name: "Carlos Pérez", Department: domain.DepartmentMedicare, LeaderID: "leader_ana", LeaderName: "Ana", Active: true})
	employees.add(&domain.Employee{ID: "E2", Name: "Lucía Gómez", Department: domain.DepartmentVida, LeaderID: "leader_luis", LeaderName: "Luis", Active: true})

	svc := NewReportService(reports, employees, users, zerolog.Nop())
	return svc, reports, employees, users
}

func submit(t *testing.T, svc *ReportService, input ports.SubmitReportInput) *domain.Report {
	t.Helper()
	report, _, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	return report
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestReportService_Submit_CreatesReport(t *testing.T) {
	svc, repo, _, _ := newReportFixture()

	report, created, err := svc.Submit(context.Background(), ports.SubmitReportInput{
		EmployeeID:   "E1",
		Date:         "2024-03-01",
		SaleCount:    3,
		SaleAmount:   450.00,
		Description:  "pólizas nuevas",
		CallerUserID: "leader_ana",
		Department:   domain.DepartmentMedicare,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true for first submission")
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 stored report, got %d", repo.count())
	}
	if report.EmployeeName != "Carlos Pérez" {
		t.Fatalf("employee name snapshot not taken: %q", report.EmployeeName)
	}
	if report.LeaderID != "leader_ana" || report.LeaderName != "Ana" {
		t.Fatalf("leader identity not resolved: %q / %q", report.LeaderID, report.LeaderName)
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !report.Date.Equal(want) {
		t.Fatalf("expected canonical date %v, got %v", want, report.Date)
	}
	if report.Department != domain.DepartmentMedicare {
		t.Fatalf("unexpected department: %q", report.Department)
	}
}

func TestReportService_Submit_Idempotent(t *testing.T) {
	svc, repo, _, _ := newReportFixture()

	input := ports.SubmitReportInput{
		EmployeeID:   "E1",
		Date:         "2024-03-01",
		SaleCount:    3,
		SaleAmount:   450.00,
		CallerUserID: "leader_ana",
		Department:   domain.DepartmentMedicare,
	}

	first := submit(t, svc, input)
	_, created, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("second Submit returned error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for repeated key")
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 stored report after resubmission, got %d", repo.count())
	}

	reports, err := svc.List(context.Background(), ports.ListReportsInput{Role: domain.RoleLeader, CallerUserID: "leader_ana"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != first.ID {
		t.Fatalf("expected the original report to survive, got %+v", reports)
	}
	if reports[0].SaleCount != 3 || reports[0].SaleAmount != 450.00 {
		t.Fatalf("metrics changed on identical resubmission: %+v", reports[0])
	}
}

func TestReportService_Submit_OverwritesExistingKey(t *testing.T) {
	svc, repo, _, _ := newReportFixture()

	submit(t, svc, ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01",
		SaleCount: 3, SaleAmount: 450.00,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})
	updated, created, err := svc.Submit(context.Background(), ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01",
		SaleCount: 5, SaleAmount: 700.00, Description: "corrección", Comments: "ajuste de cierre",
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if created {
		t.Fatalf("expected overwrite, not a new report")
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 stored report, got %d", repo.count())
	}
	if updated.SaleCount != 5 || updated.SaleAmount != 700.00 {
		t.Fatalf("metrics not overwritten: %+v", updated)
	}
	if updated.Description != "corrección" || updated.Comments != "ajuste de cierre" {
		t.Fatalf("text fields not overwritten: %+v", updated)
	}
}

func TestReportService_Submit_DistinctKeysCreateDistinctReports(t *testing.T) {
	svc, repo, _, _ := newReportFixture()

	base := ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01", SaleCount: 1,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	}
	submit(t, svc, base)

	otherDay := base
	otherDay.Date = "2024-03-02"
	submit(t, svc, otherDay)

	otherEmployee := base
	otherEmployee.EmployeeID = "E2"
	submit(t, svc, otherEmployee)

	otherLeader := base
	otherLeader.CallerUserID = "leader_luis"
	submit(t, svc, otherLeader)

	if repo.count() != 4 {
		t.Fatalf("expected 4 distinct reports, got %d", repo.count())
	}
}

func TestReportService_Submit_UnknownEmployee(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	_, _, err := svc.Submit(context.Background(), ports.SubmitReportInput{
		EmployeeID: "ghost", Date: "2024-03-01",
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})
	if err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestReportService_Submit_InvalidDate(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	for _, date := range []string{"03/01/2024", "2024-13-01", "not-a-date", ""} {
		_, _, err := svc.Submit(context.Background(), ports.SubmitReportInput{
			EmployeeID: "E1", Date: date,
			CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
		})
		if err != domain.ErrInvalidDate {
			t.Fatalf("date %q: expected ErrInvalidDate, got %v", date, err)
		}
	}
}

func TestReportService_Submit_ClampsNegativeMetrics(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	report := submit(t, svc, ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01",
		SaleCount: -3, SaleAmount: -10.50,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})
	if report.SaleCount != 0 || report.SaleAmount != 0 {
		t.Fatalf("negative metrics not clamped: %+v", report)
	}
}

func TestReportService_Submit_RefreshesLeaderNameSnapshot(t *testing.T) {
	svc, _, _, users := newReportFixture()

	submit(t, svc, ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01", SaleCount: 1,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})

	// Leader is renamed in the credential store; the next submission must
	// pick up the current display name.
	users.add(&domain.User{ID: "leader_ana", Email: "ana@example.com", Name: "Ana María", Role: domain.RoleLeader, Department: domain.DepartmentMedicare, Active: true})

	report := submit(t, svc, ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01", SaleCount: 2,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})
	if report.LeaderName != "Ana María" {
		t.Fatalf("leader name snapshot not refreshed: %q", report.LeaderName)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func seedReports(t *testing.T, svc *ReportService) {
	t.Helper()
	entries := []ports.SubmitReportInput{
		{EmployeeID: "E1", Date: "2024-03-01", SaleCount: 3, SaleAmount: 450, CallerUserID: "leader_ana", Department: domain.DepartmentMedicare},
		{EmployeeID: "E1", Date: "2024-03-05", SaleCount: 1, SaleAmount: 120, CallerUserID: "leader_ana", Department: domain.DepartmentMedicare},
		{EmployeeID: "E2", Date: "2024-03-03", SaleCount: 2, SaleAmount: 300, CallerUserID: "leader_luis", Department: domain.DepartmentVida},
		{EmployeeID: "E2", Date: "2024-04-10", SaleCount: 4, SaleAmount: 900, CallerUserID: "leader_luis", Department: domain.DepartmentVida},
	}
	for _, in := range entries {
		submit(t, svc, in)
	}
}

func TestReportService_List_LeaderIsolation(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	// Filters supplied by a leader are ignored, including attempts to peek
	// at another department or leader.
	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:           domain.RoleLeader,
		CallerUserID:   "leader_ana",
		Department:     domain.DepartmentVida,
		LeaderSearch:   "Luis",
		EmployeeSearch: "Lucía",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports for leader_ana, got %d", len(reports))
	}
	for _, r := range reports {
		if r.LeaderID != "leader_ana" {
			t.Fatalf("leader isolation broken: saw report of %q", r.LeaderID)
		}
	}
}

func TestReportService_List_BossSeesEverythingWithoutFilters(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:         domain.RoleBoss,
		CallerUserID: "boss_1",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("expected all 4 reports, got %d", len(reports))
	}
}

func TestReportService_List_BossFilterConjunction(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:         domain.RoleBoss,
		CallerUserID: "boss_1",
		Department:   domain.DepartmentVida,
		DateFrom:     "2024-03-01",
		DateTo:       "2024-03-31",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected exactly 1 report for vida in March, got %d", len(reports))
	}
	if reports[0].Department != domain.DepartmentVida || reports[0].SaleCount != 2 {
		t.Fatalf("wrong report matched: %+v", reports[0])
	}
}

func TestReportService_List_DateRangeIsInclusive(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	// Bounds equal to the report's own calendar day must include it.
	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:         domain.RoleBoss,
		CallerUserID: "boss_1",
		DateFrom:     "2024-03-05",
		DateTo:       "2024-03-05",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected single-day range to match, got %d reports", len(reports))
	}
}

func TestReportService_List_BossLeaderSubstring(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:         domain.RoleBoss,
		CallerUserID: "boss_1",
		LeaderSearch: "lu",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports for leader substring, got %d", len(reports))
	}
	for _, r := range reports {
		if !strings.Contains(strings.ToLower(r.LeaderName), "lu") {
			t.Fatalf("leader substring filter broken: %q", r.LeaderName)
		}
	}
}

func TestReportService_List_InvalidDateFilter(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	_, err := svc.List(context.Background(), ports.ListReportsInput{
		Role: domain.RoleBoss, CallerUserID: "boss_1", DateFrom: "01-03-2024",
	})
	if err != domain.ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestReportService_List_SortedMostRecentFirst(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	seedReports(t, svc)

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role: domain.RoleBoss, CallerUserID: "boss_1",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1].Date.Before(reports[i].Date) {
			t.Fatalf("reports not sorted most recent first: %v before %v", reports[i-1].Date, reports[i].Date)
		}
	}
}

func TestReportService_List_EmployeeSearchUsesLiveName(t *testing.T) {
	svc, _, employees, _ := newReportFixture()
	seedReports(t, svc)

	// Employee E1 is renamed after the reports were written; the live name
	// must drive both the filter and the displayed name.
	employees.add(&domain.Employee{ID: "E1", Name: "Carlos Ramírez", Department: domain.DepartmentMedicare, LeaderID: "leader_ana", LeaderName: "Ana", Active: true})

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:           domain.RoleBoss,
		CallerUserID:   "boss_1",
		EmployeeSearch: "ramírez",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports matching the new name, got %d", len(reports))
	}
	for _, r := range reports {
		if r.EmployeeName != "Carlos Ramírez" {
			t.Fatalf("live name not resolved: %q", r.EmployeeName)
		}
	}

	// The old name no longer matches anything.
	reports, err = svc.List(context.Background(), ports.ListReportsInput{
		Role:           domain.RoleBoss,
		CallerUserID:   "boss_1",
		EmployeeSearch: "pérez",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("stale name should not match, got %d reports", len(reports))
	}
}

func TestReportService_List_EmployeeSnapshotFallback(t *testing.T) {
	svc, _, employees, _ := newReportFixture()
	seedReports(t, svc)

	// Employee E2 is removed from the registry; the stored snapshot keeps
	// the reports searchable and displayable.
	employees.remove("E2")

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role:           domain.RoleBoss,
		CallerUserID:   "boss_1",
		EmployeeSearch: "lucía",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected snapshot fallback to match 2 reports, got %d", len(reports))
	}
	for _, r := range reports {
		if r.EmployeeName != "Lucía Gómez" {
			t.Fatalf("snapshot fallback broken: %q", r.EmployeeName)
		}
	}
}

func TestReportService_List_LeaderNameResolvedLive(t *testing.T) {
	svc, _, _, users := newReportFixture()
	seedReports(t, svc)

	// Renamed leader shows up with the current name; a leader whose account
	// is gone keeps the stored snapshot.
	users.add(&domain.User{ID: "leader_ana", Email: "ana@example.com", Name: "Ana María", Role: domain.RoleLeader, Department: domain.DepartmentMedicare, Active: true})
	delete(users.byID, "leader_luis")

	reports, err := svc.List(context.Background(), ports.ListReportsInput{
		Role: domain.RoleBoss, CallerUserID: "boss_1",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for _, r := range reports {
		switch r.LeaderID {
		case "leader_ana":
			if r.LeaderName != "Ana María" {
				t.Fatalf("live leader name not resolved: %q", r.LeaderName)
			}
		case "leader_luis":
			if r.LeaderName != "Luis" {
				t.Fatalf("leader snapshot fallback broken: %q", r.LeaderName)
			}
		}
	}
}

func TestReportService_List_EmployeeNamePlaceholder(t *testing.T) {
	svc, reports, employees, _ := newReportFixture()

	submit(t, svc, ports.SubmitReportInput{
		EmployeeID: "E1", Date: "2024-03-01", SaleCount: 1,
		CallerUserID: "leader_ana", Department: domain.DepartmentMedicare,
	})

	// Simulate legacy data: the employee is gone and the snapshot is empty.
	employees.remove("E1")
	for _, r := range reports.byKey {
		r.EmployeeName = ""
	}

	out, err := svc.List(context.Background(), ports.ListReportsInput{
		Role: domain.RoleBoss, CallerUserID: "boss_1",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 report, got %d", len(out))
	}
	if out[0].EmployeeName != domain.EmployeeNamePlaceholder {
		t.Fatalf("expected placeholder name, got %q", out[0].EmployeeName)
	}
}
