package postgres

import (
	"context"
	"errors"
	"strings"

	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
	"gorm.io/gorm"
)

type ItemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Create(ctx context.Context, item *model.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return customErrors.WrapInternal(err, "CreateItem")
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id, ownerID int64) (model.Item, error) {
	var it model.Item
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&it)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Item{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Item{}, customErrors.WrapInternal(err, "GetItemByID")
	}
	return it, nil
}

func (r *ItemRepo) List(ctx context.Context, f repo.ItemFilter) ([]model.Item, error) {
	q := r.filtered(ctx, f)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var items []model.Item
	err := q.Order("priority DESC, created_at DESC").
		Offset(f.Skip).
		Find(&items).Error
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListItems")
	}
	return items, nil
}

func (r *ItemRepo) Count(ctx context.Context, f repo.ItemFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, customErrors.WrapInternal(err, "CountItems")
	}
	return n, nil
}

func (r *ItemRepo) Update(ctx context.Context, item *model.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateItem")
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id, ownerID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Item{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteItem")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

// filtered applies the owner scope and the optional filters. LOWER/LIKE
// instead of ILIKE so the same query runs on the sqlite test driver.
func (r *ItemRepo) filtered(ctx context.Context, f repo.ItemFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Item{}).Where("owner_id = ?", f.OwnerID)
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}
