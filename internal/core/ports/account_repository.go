package ports

import (
	"context"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// AccountRepository defines the credential store contract.
type AccountRepository interface {
	// Insert persists a new account and returns it with the store-generated ID.
	// It returns domain.ErrDuplicateAccount when the email is already taken;
	// uniqueness must be enforced atomically by the store.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByEmail returns domain.ErrAccountNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByID returns domain.ErrAccountNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Exists reports whether an account with id is still stored.
	Exists(ctx context.Context, id string) (bool, error)
}

// ProfileCache is a read-through cache for account profiles. Implementations
// return (nil, nil) on a miss. The store stays authoritative for whether an
// account exists; a hit only saves loading the document.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Set(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}
