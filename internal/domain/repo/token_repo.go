package repo

import (
	"context"
	"time"
)

// TokenRepo tracks issued and revoked token ids. Tokens themselves stay
// stateless; only the JTI set lives here, with TTL-based eviction.
type TokenRepo interface {
	Store(ctx context.Context, jti string, exp time.Time) error
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	RevokeAccess(ctx context.Context, jti string, exp time.Time) error
	IsAccessRevoked(ctx context.Context, jti string) (bool, error)
}
