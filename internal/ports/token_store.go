package ports

import (
	"context"

	"github.com/bnema/userdir-cli/internal/domain"
)

// TokenStore is durable credential storage, shared with whatever ran before
// this process. GetToken returns domain.ErrTokenNotFound when nothing is
// stored.
type TokenStore interface {
	GetToken(ctx context.Context) (domain.Token, error)
	SetToken(ctx context.Context, token domain.Token) error
	ClearToken(ctx context.Context) error
}
