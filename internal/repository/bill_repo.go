package repository

import (
	"context"

	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	NextBillNumber(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) DB() *gorm.DB { return r.db }

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Preload("Payments").Preload("Cashier").First(&b, id).Error
	return &b, err
}

func (r *billRepo) List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Bill{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Payments").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Bill{}).Where("id = ?", id).Update("status", status).Error
}

func (r *billRepo) NextBillNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Postgres sequence: monotonic and atomic under concurrent checkouts.
	// Gaps appear on rollback; duplicates never do.
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('bills_bill_number_seq')").Scan(&num).Error
	return num, err
}
