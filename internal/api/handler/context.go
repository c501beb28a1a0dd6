package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionClaims is the identity the Auth middleware injected into the context.
type sessionClaims struct {
	UserID     string
	Email      string
	Name       string
	Role       string
	Department string
}

// ctxClaims extracts the auth claims and performs a fast-fail check before
// any service call: role and user id must both be present. A token minted
// without them is structurally valid but operationally unusable.
func ctxClaims(c echo.Context) (sessionClaims, error) {
	claims := sessionClaims{}
	claims.UserID, _ = c.Get("user_id").(string)
	claims.Email, _ = c.Get("email").(string)
	claims.Name, _ = c.Get("name").(string)
	claims.Role, _ = c.Get("role").(string)
	claims.Department, _ = c.Get("department").(string)

	if claims.Role == "" || claims.UserID == "" {
		return sessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
