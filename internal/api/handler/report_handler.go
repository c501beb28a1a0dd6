package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aseguran/reporting-system/internal/api/metrics"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

// ReportHandler handles HTTP requests for daily sales reports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit handles POST /api/reports — inserts or overwrites the report for
// (employee, date, caller). Responds 201 when a new report was created and
// 200 when an existing one was overwritten.
//
// @Summary      Submit a daily sales report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitReportRequest  true  "Report entry"
// @Success      200   {object}  reportResponse
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, created, err := h.service.Submit(c.Request().Context(), ports.SubmitReportInput{
		EmployeeID:   req.EmployeeID,
		Date:         req.Date,
		SaleCount:    coerceCount(req.SaleCount),
		SaleAmount:   coerceAmount(req.SaleAmount),
		Description:  req.Description,
		Comments:     req.Comments,
		CallerUserID: claims.UserID,
		Department:   claims.Department,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	result := "updated"
	if created {
		status = http.StatusCreated
		result = "created"
	}
	metrics.ReportsSubmittedTotal.WithLabelValues(result).Inc()

	return c.JSON(status, toReportResponse(report))
}

// List handles GET /api/reports — a leader sees only their own submissions,
// a boss can filter by department, leader, date range, and employee name.
//
// @Summary      List sales reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        department  query     string  false  "Department (boss only)"
// @Param        leader      query     string  false  "Leader name substring (boss only)"
// @Param        dateFrom    query     string  false  "Inclusive start date YYYY-MM-DD (boss only)"
// @Param        dateTo      query     string  false  "Inclusive end date YYYY-MM-DD (boss only)"
// @Param        employee    query     string  false  "Employee name substring (boss only)"
// @Success      200         {object}  listReportsResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reports, err := h.service.List(c.Request().Context(), ports.ListReportsInput{
		Role:           claims.Role,
		CallerUserID:   claims.UserID,
		Department:     c.QueryParam("department"),
		LeaderSearch:   c.QueryParam("leader"),
		DateFrom:       c.QueryParam("dateFrom"),
		DateTo:         c.QueryParam("dateTo"),
		EmployeeSearch: c.QueryParam("employee"),
	})
	if err != nil {
		return err
	}

	metrics.ReportQueriesTotal.WithLabelValues(claims.Role).Inc()
	return c.JSON(http.StatusOK, toListReportsResponse(reports))
}
