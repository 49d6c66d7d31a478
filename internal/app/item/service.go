package item

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/hojin-dev/go-htmx-boilerplate/internal/app/dto"
	customErrors "github.com/hojin-dev/go-htmx-boilerplate/internal/domain/errors"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/model"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/domain/repo"
)

// Page is the shape of a paginated listing.
type Page struct {
	Items []model.Item
	Total int64
	Page  int
	Size  int
}

// Service is owner-scoped item CRUD. Every call takes the owner id and
// passes it down into the query.
type Service struct {
	repo repo.ItemRepo
	v    *validator.Validate
}

func New(r repo.ItemRepo, v *validator.Validate) *Service {
	return &Service{repo: r, v: v}
}

func (s *Service) Get(ctx context.Context, id, ownerID int64) (model.Item, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, f repo.ItemFilter) ([]model.Item, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Count(ctx context.Context, f repo.ItemFilter) (int64, error) {
	f.Skip, f.Limit = 0, 0
	return s.repo.Count(ctx, f)
}

// Paginate returns one page plus the total matching count.
func (s *Service) Paginate(ctx context.Context, f repo.ItemFilter, page, size int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	f.Skip = (page - 1) * size
	f.Limit = size

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return Page{}, err
	}
	total, err := s.Count(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *Service) Create(ctx context.Context, in dto.ItemCreateDTO, owner model.User) (model.Item, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Item{}, customErrors.NewInvalidArgument(err.Error())
	}
	it := model.Item{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		IsActive:    true,
		OwnerID:     owner.ID,
	}
	if err := s.repo.Create(ctx, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, id, ownerID int64, in dto.ItemUpdateDTO) (model.Item, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Item{}, customErrors.NewInvalidArgument(err.Error())
	}
	it, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Priority != nil {
		it.Priority = *in.Priority
	}
	if in.IsActive != nil {
		it.IsActive = *in.IsActive
	}
	if err := s.repo.Update(ctx, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.Delete(ctx, id, ownerID)
}

func (s *Service) ToggleActive(ctx context.Context, id, ownerID int64) (model.Item, error) {
	it, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	it.IsActive = !it.IsActive
	if err := s.repo.Update(ctx, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}
