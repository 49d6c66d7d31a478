package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/password"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/token"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

// Service orchestrates registration, login and the token lifecycle.
type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.User, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ChangePassword(ctx context.Context, user model.User, in dto.ChangePasswordDTO) (model.User, error)
	// UserFromAccessToken resolves an access token to its user. Any
	// failure (bad token, revoked, unknown subject, inactive account)
	// comes back as ErrInvalidToken.
	UserFromAccessToken(ctx context.Context, raw string) (model.User, error)
}

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	codec     *token.Codec
	v         *validator.Validate
}

func New(ur repo.UserRepo, tr repo.TokenRepo, codec *token.Codec, v *validator.Validate) Service {
	return &authService{userRepo: ur, tokenRepo: tr, codec: codec, v: v}
}

func (s *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	// email checked first, then username
	taken, err := s.userRepo.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, customErrors.NewAlreadyExists("email already registered")
	}
	taken, err = s.userRepo.UsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, customErrors.NewAlreadyExists("username already taken")
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := s.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	// Unknown email, wrong password and deactivated account all map to
	// the same error so the response does not leak account state.
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if customErrors.IsNotFound(err) {
			return model.TokenPair{}, customErrors.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return s.issuePair(ctx, user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	if revoked {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := claims.UserID()
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil || !user.IsActive {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	// rotation: the presented refresh token dies with this call
	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	return s.issuePair(ctx, user.ID)
}

func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.codec.Verify(refreshToken, token.KindRefresh); err == nil {
		if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return customErrors.WrapInternal(err, "Logout")
		}
	}
	// access token may already be expired, which is fine
	if claims, err := s.codec.Verify(accessToken, token.KindAccess); err == nil {
		_ = s.tokenRepo.RevokeAccess(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, user model.User, in dto.ChangePasswordDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}
	if !password.Verify(in.CurrentPassword, user.PasswordHash) {
		return model.User{}, customErrors.NewInvalidArgument("current password is incorrect")
	}
	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "ChangePassword")
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *authService) UserFromAccessToken(ctx context.Context, raw string) (model.User, error) {
	claims, err := s.codec.Verify(raw, token.KindAccess)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	revoked, err := s.tokenRepo.IsAccessRevoked(ctx, claims.ID)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UserFromAccessToken")
	}
	if revoked {
		return model.User{}, customErrors.ErrInvalidToken
	}

	uid, err := claims.UserID()
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil || !user.IsActive {
		return model.User{}, customErrors.ErrInvalidToken
	}
	return user, nil
}

func (s *authService) issuePair(ctx context.Context, uid int64) (model.TokenPair, error) {
	at, atClaims, err := s.codec.Issue(uid, token.KindAccess)
	if err != nil {
		return model.TokenPair{}, err
	}
	rt, rtClaims, err := s.codec.Issue(uid, token.KindRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := s.tokenRepo.Store(ctx, rtClaims.ID, rtClaims.ExpiresAt.Time); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "StoreRefresh")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atClaims.ExpiresAt.Sub(now),
		RefreshTTL:   rtClaims.ExpiresAt.Sub(now),
		UserID:       uid,
	}, nil
}
