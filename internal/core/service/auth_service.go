package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aseguran/reporting-system/internal/core/domain"
	"github.com/aseguran/reporting-system/internal/core/ports"
)

const minPasswordLength = 6

// LoginThrottle abstracts the failed-login rate limiter (Redis).
type LoginThrottle interface {
	// TooMany reports whether the email has exceeded the failure budget.
	TooMany(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.AuthRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a pending, inactive account. Activation and role
// assignment happen out of band; this path never produces a usable login.
func (s *AuthService) Register(ctx context.Context, name, email, department, password, confirmPassword string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRegistrationDepartment(department) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if password != confirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Active {
			return nil, domain.ErrUserExists
		}
		return nil, domain.ErrUserPending
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		Role:         domain.RolePending,
		Department:   department,
		Active:       false,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("department", created.Department).Msg("registration pending approval")
	return created, nil
}

// Login verifies credentials and issues a signed session token. Pending and
// inactive accounts are rejected before the password is even checked, and
// accounts backed only by an external identity cannot log in with a password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if tooMany, err := s.throttle.TooMany(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login throttle check failed, continuing")
	} else if tooMany {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !user.Active || user.Role == domain.RolePending {
		return "", nil, domain.ErrAccountPending
	}
	if user.PasswordHash == "" {
		return "", nil, domain.ErrNoPassword
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login throttle")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"department": user.Department,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
