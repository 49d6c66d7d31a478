package repo

import (
	"context"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
)

// ItemFilter always carries the owner: listing is owner-scoped by
// construction, not by a post-hoc check.
type ItemFilter struct {
	OwnerID  int64
	IsActive *bool
	Search   string
	Skip     int
	Limit    int
}

type ItemRepo interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id, ownerID int64) (model.Item, error)
	List(ctx context.Context, f ItemFilter) ([]model.Item, error)
	Count(ctx context.Context, f ItemFilter) (int64, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id, ownerID int64) error
}
