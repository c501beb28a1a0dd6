package ports

import (
	"context"
	"time"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

// ListReportsFilter carries the query parameters that can be pushed down to
// storage. The employee-name substring filter is deliberately absent: the
// name may live only in the denormalized snapshot, so the service applies it
// after resolving live employee records.
type ListReportsFilter struct {
	LeaderID     string    // exact match on the stable leader id (leader role scoping)
	Department   string    // exact match
	LeaderSearch string    // case-insensitive substring on the leader name snapshot
	DateFrom     time.Time // inclusive lower bound, zero = unbounded
	DateTo       time.Time // exclusive upper bound, zero = unbounded
}

// ReportRepository defines persistence operations for daily sales reports.
type ReportRepository interface {
	// Upsert atomically inserts or overwrites the report identified by
	// (EmployeeID, Date, LeaderID). The returned bool is true when a new
	// document was created. The write is race-free: the collection carries a
	// unique compound index on the key, and insert-or-update happens in a
	// single storage operation.
	Upsert(ctx context.Context, r *domain.Report) (*domain.Report, bool, error)
	// List returns reports matching filter, most recent date first.
	List(ctx context.Context, filter ListReportsFilter) ([]*domain.Report, error)
}
