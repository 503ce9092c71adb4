package repository

import (
	"context"

	"github.com/kallesh653/smartcafee-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReadyItemRepository interface {
	Create(ctx context.Context, ri *model.ReadyItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReadyItem, error)
	List(ctx context.Context) ([]model.ReadyItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type readyItemRepo struct{ db *gorm.DB }

func NewReadyItemRepository(db *gorm.DB) ReadyItemRepository { return &readyItemRepo{db: db} }

func (r *readyItemRepo) Create(ctx context.Context, ri *model.ReadyItem) error {
	return r.db.WithContext(ctx).Create(ri).Error
}

func (r *readyItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ReadyItem, error) {
	var ri model.ReadyItem
	err := r.db.WithContext(ctx).Preload("Product").First(&ri, id).Error
	return &ri, err
}

func (r *readyItemRepo) List(ctx context.Context) ([]model.ReadyItem, error) {
	var items []model.ReadyItem
	err := r.db.WithContext(ctx).Preload("Product").Where("active = true").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *readyItemRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ReadyItem{}).Where("id = ?", id).Update("active", false).Error
}
