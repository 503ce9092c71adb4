package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an inbound supplier invoice. Product-linked lines increment
// stock; raw-material lines (ProductID == nil) only feed the supplier ledger.
type Purchase struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseNumber int       `gorm:"uniqueIndex;not null"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceNumber  *string
	InvoiceDate    *time.Time
	InvoiceAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PendingAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	GSTAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:gst_amount"`
	Notes          *string
	CreatedAt      time.Time

	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID"`
	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
}

// PurchaseItem is one invoice line. ProductID nil marks a raw-material line
// that has no catalog mapping.
type PurchaseItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID  *uuid.UUID `gorm:"type:uuid"`
	Name       string     `gorm:"not null"`
	Quantity   int        `gorm:"not null"`
	UnitRate   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
