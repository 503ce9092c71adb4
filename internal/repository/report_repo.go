package repository

import (
	"context"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/dto"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HourlyTotal is one hour bucket of completed-bill collections; the report
// service folds hours into show windows.
type HourlyTotal struct {
	Hour  int
	Total decimal.Decimal
}

// ReportRepository runs the read-side aggregation queries. All queries filter
// on status = 'completed' so cancelled bills never pollute the numbers.
type ReportRepository interface {
	SalesByDate(ctx context.Context, from, to time.Time) ([]dto.DailySales, error)
	ItemSales(ctx context.Context, from, to time.Time) ([]dto.ItemSales, error)
	CashierSales(ctx context.Context, from, to time.Time) ([]dto.CashierSales, error)
	HourlyCollection(ctx context.Context, from, to time.Time) ([]HourlyTotal, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) SalesByDate(ctx context.Context, from, to time.Time) ([]dto.DailySales, error) {
	var rows []dto.DailySales
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date,
		       COUNT(*)                                 AS bill_count,
		       COALESCE(SUM(subtotal), 0)               AS subtotal,
		       COALESCE(SUM(discount_amount), 0)        AS discount,
		       COALESCE(SUM(gst_amount), 0)             AS gst,
		       COALESCE(SUM(grand_total), 0)            AS grand_total
		FROM bills
		WHERE status = 'completed' AND DATE(created_at) BETWEEN ? AND ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ItemSales(ctx context.Context, from, to time.Time) ([]dto.ItemSales, error) {
	var rows []dto.ItemSales
	err := r.db.WithContext(ctx).Raw(`
		SELECT bi.name                                                  AS name,
		       COALESCE(SUM(bi.quantity), 0)                            AS quantity,
		       COALESCE(SUM(bi.line_total), 0)                          AS revenue,
		       COALESCE(SUM((bi.unit_price - bi.cost_price) * bi.quantity), 0) AS profit
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.status = 'completed' AND DATE(b.created_at) BETWEEN ? AND ?
		GROUP BY bi.name
		ORDER BY revenue DESC`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) CashierSales(ctx context.Context, from, to time.Time) ([]dto.CashierSales, error) {
	var rows []dto.CashierSales
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.cashier_id::text             AS cashier_id,
		       u.name                         AS cashier,
		       COUNT(*)                       AS bill_count,
		       COALESCE(SUM(b.grand_total), 0) AS total
		FROM bills b
		JOIN users u ON u.id = b.cashier_id
		WHERE b.status = 'completed' AND DATE(b.created_at) BETWEEN ? AND ?
		GROUP BY b.cashier_id, u.name
		ORDER BY total DESC`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) HourlyCollection(ctx context.Context, from, to time.Time) ([]HourlyTotal, error) {
	var rows []HourlyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COALESCE(SUM(grand_total), 0)      AS total
		FROM bills
		WHERE status = 'completed' AND DATE(created_at) BETWEEN ? AND ?
		GROUP BY 1
		ORDER BY 1`, from, to).Scan(&rows).Error
	return rows, err
}
