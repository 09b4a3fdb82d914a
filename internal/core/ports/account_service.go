package ports

import (
	"context"

	"github.com/99minutos/credential-service/internal/core/domain"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, id string) (*domain.Account, error)
}
