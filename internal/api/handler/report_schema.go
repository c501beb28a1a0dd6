package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// submitReportRequest is one daily sales entry. EmployeeID is a scalar id
// string; payloads sending an object are rejected at bind time. SaleCount
// and SaleAmount are deliberately loose: callers have historically sent them
// as numbers, numeric strings, or not at all, and the contract is to coerce,
// never reject.
type submitReportRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	SaleCount   any    `json:"sale_count"`
	SaleAmount  any    `json:"sale_amount"`
	Description string `json:"description"`
	Comments    string `json:"comments"`
}

type reportResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         time.Time `json:"date"`
	SaleCount    int       `json:"sale_count"`
	SaleAmount   float64   `json:"sale_amount"`
	Description  string    `json:"description"`
	Comments     string    `json:"comments"`
	LeaderID     string    `json:"leader_id"`
	LeaderName   string    `json:"leader_name"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type listReportsResponse struct {
	Data  []reportResponse `json:"data"`
	Total int              `json:"total"`
}
