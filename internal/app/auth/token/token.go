package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/config"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the full claim set carried by both token kinds. TokenType
// distinguishes access from refresh; a token presented where the other
// kind is expected fails verification.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, customErrors.ErrInvalidToken
	}
	return id, nil
}

// Codec signs and verifies token strings with a process-wide HMAC
// secret. Verification is stateless; revocation lives elsewhere.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

func (c *Codec) Issue(subject int64, kind Kind) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL(kind))),
			ID:        uuid.NewString(),
		},
		TokenType: string(kind),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, customErrors.WrapInternal(err, "sign token")
	}
	return signed, claims, nil
}

// Verify collapses every failure mode (bad signature, expiry, malformed
// input, kind mismatch) into ErrInvalidToken so callers cannot branch
// on why a credential was rejected.
func (c *Codec) Verify(raw string, kind Kind) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !tok.Valid {
		return nil, customErrors.ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.TokenType != string(kind) {
		return nil, customErrors.ErrInvalidToken
	}
	return claims, nil
}
