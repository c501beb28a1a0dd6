package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleLeader  = "leader"
	RoleBoss    = "boss"
	RolePending = "pending"
)

const (
	DepartmentMedicare   = "medicare"
	DepartmentVida       = "vida"
	DepartmentSalud      = "salud"
	DepartmentSegurosGen = "seguros_generales"
	DepartmentAll        = "all"
)

var ErrUserNotFound = errors.New("user not found")
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrUserExists = errors.New("email already registered to an active account")
var ErrUserPending = errors.New("email already has a registration pending approval")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountPending = errors.New("account pending administrator approval")
var ErrNoPassword = errors.New("account has no password configured")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// registrationDepartments are the departments a user may register under.
// "all" is reserved for boss accounts and is never self-assignable.
var registrationDepartments = map[string]struct{}{
	DepartmentMedicare:   {},
	DepartmentVida:       {},
	DepartmentSalud:      {},
	DepartmentSegurosGen: {},
}

// ValidRegistrationDepartment reports whether dept is self-assignable at registration.
func ValidRegistrationDepartment(dept string) bool {
	_, ok := registrationDepartments[dept]
	return ok
}

// NormalizeEmail lowercases and trims an email for use as the unique user key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User models an account in the credential store. Self-registered accounts
// start as role "pending" and inactive; promotion to leader or boss happens
// out of band, never through the public API.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	GoogleID     string    `json:"-"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
