package ports

import (
	"context"

	"github.com/aseguran/reporting-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, department, password, confirmPassword string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
