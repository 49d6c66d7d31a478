package repo

import (
	"context"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
)

type UserFilter struct {
	IsActive *bool
	Skip     int
	Limit    int
}

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context, f UserFilter) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	// Delete removes the user and all of their items in one transaction.
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
}
