package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. CurrentStock is nullable: NULL means
// the item is not stock-tracked (unlimited — e.g. fountain drinks), so bill
// creation never decrements it and availability checks are skipped.
type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// SerialNo is the human-facing display number, assigned from a DB sequence.
	SerialNo      int        `gorm:"uniqueIndex;not null"`
	Name          string     `gorm:"index;not null"`
	CategoryID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Unit          string     `gorm:"not null;default:'piece'"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentStock  *int
	MinStockAlert *int
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// Tracked reports whether stock bookkeeping applies to this product.
func (p *Product) Tracked() bool { return p.CurrentStock != nil }
