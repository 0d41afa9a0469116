package ports

import (
	"context"

	"github.com/bnema/userdir-cli/internal/domain"
)

type Directory interface {
	List(ctx context.Context) ([]domain.ManagedUser, error)
	Create(ctx context.Context, email, password string, role domain.Role) (domain.ManagedUser, error)
	Update(ctx context.Context, id domain.UserID, patch domain.UserPatch) (domain.ManagedUser, error)
	Delete(ctx context.Context, id domain.UserID) error
}
