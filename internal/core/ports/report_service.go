package ports

import (
	"context"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

// SubmitReportInput carries one daily sales entry. CallerUserID and
// Department come from the authenticated session; the leader's display name
// is resolved from the credential store at submit time so a renamed leader is
// reflected on the next write.
type SubmitReportInput struct {
	EmployeeID  string
	Date        string // calendar date, YYYY-MM-DD
	SaleCount   int
	SaleAmount  float64
	Description string
	Comments    string

	CallerUserID string
	Department   string
}

// ListReportsInput carries the caller identity plus the optional boss
// filters. For leader callers every filter is ignored and the listing is
// forced to the caller's own reports.
type ListReportsInput struct {
	Role         string
	CallerUserID string

	Department     string
	LeaderSearch   string
	DateFrom       string // YYYY-MM-DD, optional
	DateTo         string // YYYY-MM-DD, optional
	EmployeeSearch string
}

// ReportService defines the report upsert and query use cases.
type ReportService interface {
	// Submit inserts or overwrites the report for (employee, date, caller).
	// The bool is true when a new report was created rather than updated.
	Submit(ctx context.Context, input SubmitReportInput) (*domain.Report, bool, error)
	List(ctx context.Context, input ListReportsInput) ([]*domain.Report, error)
}
