package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler echoes the caller's identity back to the front end.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Message    string `json:"message"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Show handles GET /api/dashboard.
//
// @Summary      Caller identity
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Message:    "Bienvenido " + claims.Name,
		Role:       claims.Role,
		Department: claims.Department,
	})
}
