package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/token"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/config"
)

type userRepoStub struct {
	seq   int64
	users map[int64]model.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[int64]model.User{}}
}

func (s *userRepoStub) Create(_ context.Context, u *model.User) error {
	s.seq++
	u.ID = s.seq
	s.users[u.ID] = *u
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id int64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, customErrors.NewNotFound("user not found")
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, customErrors.NewNotFound("user not found")
}

func (s *userRepoStub) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, customErrors.NewNotFound("user not found")
}

func (s *userRepoStub) List(_ context.Context, _ repo.UserFilter) ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *userRepoStub) Update(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return customErrors.NewNotFound("user not found")
	}
	s.users[u.ID] = *u
	return nil
}

func (s *userRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return customErrors.NewNotFound("user not found")
	}
	delete(s.users, id)
	return nil
}

func (s *userRepoStub) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *userRepoStub) UsernameTaken(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, u := range s.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type tokenRepoStub struct {
	stored        map[string]bool
	revoked       map[string]bool
	accessRevoked map[string]bool
}

func newTokenRepoStub() *tokenRepoStub {
	return &tokenRepoStub{
		stored:        map[string]bool{},
		revoked:       map[string]bool{},
		accessRevoked: map[string]bool{},
	}
}

func (s *tokenRepoStub) Store(_ context.Context, jti string, _ time.Time) error {
	s.stored[jti] = true
	return nil
}

func (s *tokenRepoStub) Revoke(_ context.Context, jti string, _ time.Time) error {
	s.revoked[jti] = true
	return nil
}

func (s *tokenRepoStub) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func (s *tokenRepoStub) RevokeAccess(_ context.Context, jti string, _ time.Time) error {
	s.accessRevoked[jti] = true
	return nil
}

func (s *tokenRepoStub) IsAccessRevoked(_ context.Context, jti string) (bool, error) {
	return s.accessRevoked[jti], nil
}

func newTestService(t *testing.T) (Service, *userRepoStub, *tokenRepoStub, *token.Codec) {
	t.Helper()
	ur := newUserRepoStub()
	tr := newTokenRepoStub()
	codec := token.NewCodec(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 168 * time.Hour,
	})
	return New(ur, tr, codec, validator.New()), ur, tr, codec
}

func registerDTO() dto.RegisterDTO {
	return dto.RegisterDTO{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
		FullName: "Alice Example",
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.True(t, user.IsActive)
	require.NotEqual(t, "password123", user.PasswordHash)

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, user.ID, pair.UserID)

	got, err := svc.UserFromAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	in := registerDTO()
	in.Email = "not-an-email"
	_, err := svc.Register(context.Background(), in)
	require.True(t, customErrors.IsInvalidArgument(err))

	in = registerDTO()
	in.Password = "short"
	_, err = svc.Register(context.Background(), in)
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestRegisterConflicts(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)

	// same email, different username: email conflict wins
	in := registerDTO()
	in.Username = "alice2"
	_, err = svc.Register(ctx, in)
	require.True(t, customErrors.IsAlreadyExists(err))
	require.Contains(t, err.Error(), "email")

	// same username, different email
	in = registerDTO()
	in.Email = "alice2@example.com"
	_, err = svc.Register(ctx, in)
	require.True(t, customErrors.IsAlreadyExists(err))
	require.Contains(t, err.Error(), "username")
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, ur, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "password123"})
	_, errWrongPw := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "wrong-password"})

	user.IsActive = false
	require.NoError(t, ur.Update(ctx, &user))
	_, errInactive := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})

	require.ErrorIs(t, errUnknown, customErrors.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, customErrors.ErrInvalidCredentials)
	require.ErrorIs(t, errInactive, customErrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)
	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the presented token is dead after rotation
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	// the rotated-in token still works
	_, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)

	// an access token is never accepted as a refresh token
	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, ur, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)
	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, ur.Update(ctx, &user))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestDeactivationKillsAccessToken(t *testing.T) {
	svc, ur, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)
	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	got, err := svc.UserFromAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// a still-valid token stops resolving the moment the account is off
	user.IsActive = false
	require.NoError(t, ur.Update(ctx, &user))

	_, err = svc.UserFromAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)
	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
	_, err = svc.UserFromAccessToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	// logging out with garbage tokens is a no-op, not an error
	require.NoError(t, svc.Logout(ctx, "garbage", "garbage"))
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerDTO())
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, user, dto.ChangePasswordDTO{
		CurrentPassword: "wrong-password",
		NewPassword:     "newpassword123",
	})
	require.True(t, customErrors.IsInvalidArgument(err))

	updated, err := svc.ChangePassword(ctx, user, dto.ChangePasswordDTO{
		CurrentPassword: "password123",
		NewPassword:     "newpassword123",
	})
	require.NoError(t, err)
	require.NotEqual(t, user.PasswordHash, updated.PasswordHash)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "newpassword123"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "password123"})
	require.ErrorIs(t, err, customErrors.ErrInvalidCredentials)
}
