package infra

import (
	"fmt"

	"github.com/kallesh653/smartcafee-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (extensions, sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// gen_random_uuid() defaults need pgcrypto on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Bill{},
		&model.BillItem{},
		&model.BillPayment{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.StockMovement{},
		&model.ReadyItem{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// fully handle on its own. Each statement uses IF NOT EXISTS semantics so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Human-facing sequential numbers. nextval() is atomic under concurrent
		// writes; gaps on rollback are acceptable, duplicates are not.
		`CREATE SEQUENCE IF NOT EXISTS products_serial_no_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS orders_order_number_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS bills_bill_number_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS purchases_purchase_number_seq START 1`,

		// Partial index for the low-stock alert sweep.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_low_stock') THEN
		    CREATE INDEX idx_products_low_stock
		        ON products (current_stock)
		        WHERE active = true AND current_stock IS NOT NULL AND min_stock_alert IS NOT NULL;
		  END IF;
		END $$`,

		// Reports group completed bills by day constantly.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_bills_created_at') THEN
		    CREATE INDEX idx_bills_created_at ON bills (created_at);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the full schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Bill{},
		&model.BillItem{},
		&model.BillPayment{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.StockMovement{},
		&model.ReadyItem{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
