package handler

import (
	"strconv"
	"strings"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

// coerceCount converts a loosely typed sale count to a non-negative int.
// Missing, malformed, and negative values all collapse to 0.
func coerceCount(v any) int {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	case int:
		if n < 0 {
			return 0
		}
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || i < 0 {
			return 0
		}
		return i
	default:
		return 0
	}
}

// coerceAmount converts a loosely typed sale amount to a non-negative float64.
func coerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case int:
		if n < 0 {
			return 0
		}
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.UTC(),
		SaleCount:    r.SaleCount,
		SaleAmount:   r.SaleAmount,
		Description:  r.Description,
		Comments:     r.Comments,
		LeaderID:     r.LeaderID,
		LeaderName:   r.LeaderName,
		Department:   r.Department,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func toListReportsResponse(reports []*domain.Report) listReportsResponse {
	items := make([]reportResponse, len(reports))
	for i, r := range reports {
		items[i] = toReportResponse(r)
	}
	return listReportsResponse{Data: items, Total: len(items)}
}
