package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo keeps refresh token ids under "rt:" keys and revoked access
// ids under "at:". A refresh key holding "1" is revoked; keys expire
// with the token itself.
type TokenRepo struct {
	client *redis.Client
}

func NewTokenRepo(client *redis.Client) *TokenRepo {
	return &TokenRepo{client: client}
}

func (r *TokenRepo) Store(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "rt:"+jti, "0", safeTTL(exp)).Err()
}

func (r *TokenRepo) Revoke(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "rt:"+jti, "1", safeTTL(exp)).Err()
}

func (r *TokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	val, err := r.client.Get(ctx, "rt:"+jti).Result()
	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		// fail closed: treat as revoked and surface the error
		return true, err
	default:
		return val == "1", nil
	}
}

func (r *TokenRepo) RevokeAccess(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "at:"+jti, "1", safeTTL(exp)).Err()
}

func (r *TokenRepo) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, "at:"+jti).Result()
	return n > 0, err
}

// safeTTL guards against a non-positive TTL so the key still expires.
func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return time.Hour
	}
	return ttl
}
