package repository

import (
	"context"

	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	NextPurchaseNumber(ctx context.Context, tx *gorm.DB) (int, error)
	// SumBySupplierTx recomputes the supplier running totals from purchase rows.
	SumBySupplierTx(tx *gorm.DB, supplierID uuid.UUID) (purchased, pending decimal.Decimal, err error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Items").Preload("Supplier").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})

	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.From != "" {
		q = q.Where("DATE(created_at) >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("DATE(created_at) <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Supplier").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) NextPurchaseNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('purchases_purchase_number_seq')").Scan(&num).Error
	return num, err
}

func (r *purchaseRepo) SumBySupplierTx(tx *gorm.DB, supplierID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Purchased decimal.Decimal
		Pending   decimal.Decimal
	}
	err := tx.Raw(`SELECT COALESCE(SUM(invoice_amount), 0) AS purchased,
	                      COALESCE(SUM(pending_amount), 0) AS pending
	               FROM purchases WHERE supplier_id = ?`, supplierID).Scan(&row).Error
	return row.Purchased, row.Pending, err
}
