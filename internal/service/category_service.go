package service

import (
	"context"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	rdb        *redis.Client
}

func NewCategoryService(categories repository.CategoryRepository, rdb *redis.Client) CategoryService {
	return &categoryService{categories: categories, rdb: rdb}
}

func (s *categoryService) bustMenu(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, menuCacheKey).Err()
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name, DisplayOrder: req.DisplayOrder, Active: true}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.bustMenu(ctx)
	return categoryToResponse(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("category not found")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	s.bustMenu(ctx)
	return categoryToResponse(c), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return apierror.NotFound("category not found")
	}
	if err := s.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.bustMenu(ctx)
	return nil
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
		Active:       c.Active,
	}
}
