package user

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/password"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

// Service is the user directory: lookups and mutations on the user
// entity outside of the auth flows.
type Service struct {
	repo repo.UserRepo
	v    *validator.Validate
}

func New(r repo.UserRepo, v *validator.Validate) *Service {
	return &Service{repo: r, v: v}
}

func (s *Service) GetByID(ctx context.Context, id int64) (model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context, skip, limit int, isActive *bool) ([]model.User, error) {
	return s.repo.List(ctx, repo.UserFilter{IsActive: isActive, Skip: skip, Limit: limit})
}

// Update applies a partial update. Email and username changes are
// checked for uniqueness against everyone but the user themselves.
func (s *Service) Update(ctx context.Context, user model.User, in dto.UserUpdateDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := s.repo.EmailTaken(ctx, *in.Email, user.ID)
		if err != nil {
			return model.User{}, err
		}
		if taken {
			return model.User{}, customErrors.NewAlreadyExists("email already registered")
		}
		user.Email = *in.Email
	}
	if in.Username != nil && *in.Username != user.Username {
		taken, err := s.repo.UsernameTaken(ctx, *in.Username, user.ID)
		if err != nil {
			return model.User{}, err
		}
		if taken {
			return model.User{}, customErrors.NewAlreadyExists("username already taken")
		}
		user.Username = *in.Username
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.Password != nil {
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return model.User{}, customErrors.WrapInternal(err, "UpdateUser")
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Delete cascades to the user's items inside the repository
// transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Activate(ctx context.Context, user model.User) (model.User, error) {
	user.IsActive = true
	if err := s.repo.Update(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) Deactivate(ctx context.Context, user model.User) (model.User, error) {
	user.IsActive = false
	if err := s.repo.Update(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) Verify(ctx context.Context, user model.User) (model.User, error) {
	user.IsVerified = true
	if err := s.repo.Update(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) IsEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.repo.EmailTaken(ctx, email, excludeID)
}

func (s *Service) IsUsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	return s.repo.UsernameTaken(ctx, username, excludeID)
}
