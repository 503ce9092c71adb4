package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment modes.
const (
	PayCash  = "cash"
	PayUPI   = "upi"
	PayCard  = "card"
	PayMixed = "mixed"
)

// Bill statuses. Bills are immutable except completed → cancelled.
const (
	BillCompleted = "completed"
	BillCancelled = "cancelled"
)

// Bill is an immutable completed sales transaction.
// Invariants: GrandTotal = round(Subtotal - DiscountAmount + GSTAmount),
// RoundOff = GrandTotal - (Subtotal - DiscountAmount + GSTAmount), and for
// mixed payment the payment rows sum exactly to GrandTotal.
type Bill struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillNumber     int       `gorm:"uniqueIndex;not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GSTPct         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:gst_pct"`
	GSTAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:gst_amount"`
	RoundOff       decimal.Decimal `gorm:"type:decimal(4,2);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode    string          `gorm:"type:varchar(10);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'completed';index"`
	CashierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	// OrderID is set when the bill came from an order conversion.
	OrderID        *uuid.UUID `gorm:"type:uuid"`
	CustomerName   *string
	CustomerMobile *string `gorm:"type:varchar(10)"`
	SeatNumber     *string `gorm:"type:varchar(10)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items    []BillItem    `gorm:"foreignKey:BillID"`
	Payments []BillPayment `gorm:"foreignKey:BillID"`
	Cashier  *User         `gorm:"foreignKey:CashierID"`
}

// BillItem snapshots name, price and cost at billing time so reports stay
// correct after catalog edits.
type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// BillPayment is one leg of the payment breakdown. A single-mode bill has one
// row; a mixed bill has one row per non-zero method.
type BillPayment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID uuid.UUID `gorm:"type:uuid;not null;index"`
	Method string    `gorm:"type:varchar(10);not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
