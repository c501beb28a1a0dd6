package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aseguran/reporting-system/internal/api/metrics"
	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for the employee registry.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type createEmployeeRequest struct {
	Name string `json:"name" validate:"required"`
}

type employeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	LeaderID   string    `json:"leader_id"`
	LeaderName string    `json:"leader_name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type listEmployeesResponse struct {
	Data []employeeResponse `json:"data"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		LeaderID:   e.LeaderID,
		LeaderName: e.LeaderName,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt.UTC(),
	}
}

// List handles GET /api/employees — a leader sees their own department
// (umbrella departments included), a boss sees the full registry.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listEmployeesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employees, err := h.service.List(c.Request().Context(), ports.ListEmployeesInput{
		Role:       claims.Role,
		Department: claims.Department,
	})
	if err != nil {
		return err
	}

	items := make([]employeeResponse, len(employees))
	for i, e := range employees {
		items[i] = toEmployeeResponse(e)
	}
	return c.JSON(http.StatusOK, listEmployeesResponse{Data: items})
}

// Create handles POST /api/employees — leader only, enforced by RBAC
// middleware. The employee lands in the caller's department.
//
// @Summary      Register an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:         req.Name,
		LeaderUserID: claims.UserID,
		Department:   claims.Department,
	})
	if err != nil {
		return err
	}

	metrics.EmployeesCreatedTotal.WithLabelValues(employee.Department).Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}
