package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

type stubAuthService struct {
	registerErr  error
	registered   []string
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	loginEmail   string
	loginPasswrd string
}

func (s *stubAuthService) Register(_ context.Context, name, email, department, password, confirmPassword string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = append(s.registered, email)
	return &domain.User{Name: name, Email: email, Department: department, Role: domain.RolePending}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	s.loginEmail = email
	s.loginPasswrd = password
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func newAuthRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	body := `{"name":"Ana López","email":"ana@example.com","department":"medicare","password":"secret123","confirm_password":"secret123"}`
	c, rec := newAuthRequest(http.MethodPost, "/api/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.registered) != 1 || svc.registered[0] != "ana@example.com" {
		t.Fatalf("service not called with email: %v", svc.registered)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Message, "pending") {
		t.Fatalf("response should mention pending approval: %q", resp.Message)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthRequest(http.MethodPost, "/api/register", `{"email":"ana@example.com"}`)
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	body := `{"name":"Ana","email":"ana@example.com","department":"medicare","password":"secret123","confirm_password":"secret123"}`
	c, _ := newAuthRequest(http.MethodPost, "/api/register", body)

	if err := h.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to pass through, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "signed-token",
		loginUser:  &domain.User{Name: "Ana", Role: domain.RoleLeader, Department: domain.DepartmentMedicare},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthRequest(http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
	if resp.User.Name != "Ana" || resp.User.Role != domain.RoleLeader || resp.User.Department != domain.DepartmentMedicare {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestAuthHandler_Login_UnknownEmailIs401(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrUserNotFound})

	c, _ := newAuthRequest(http.MethodPost, "/api/login", `{"email":"ghost@example.com","password":"secret123"}`)
	err := h.Login(c)

	// The login surface must not reveal whether the account exists.
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %v", err)
	}
	if he.Message != domain.ErrInvalidCredentials.Error() {
		t.Fatalf("expected generic credentials message, got %v", he.Message)
	}
}

func TestAuthHandler_Login_ErrorsPassThrough(t *testing.T) {
	for _, wantErr := range []error{domain.ErrAccountPending, domain.ErrInvalidCredentials, domain.ErrTooManyAttempts} {
		h := NewAuthHandler(&stubAuthService{loginErr: wantErr})

		c, _ := newAuthRequest(http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"secret123"}`)
		if err := h.Login(c); err != wantErr {
			t.Fatalf("expected %v to pass through, got %v", wantErr, err)
		}
	}
}
