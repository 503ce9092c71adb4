package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status machine. Forward-only:
// pending → preparing → ready, then completed via bill conversion only,
// or pending/preparing → cancelled.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a staged customer request. It never touches stock; stock moves only
// when the order is converted into a Bill.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber int       `gorm:"uniqueIndex;not null"`
	// At least one of SeatNumber / MobileNumber is required.
	SeatNumber   *string `gorm:"type:varchar(10)"`
	MobileNumber *string `gorm:"type:varchar(10)"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	// BillID links the bill created when this order was converted.
	BillID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots name and unit price at order time — conversion to a bill
// must bill what the customer was shown, not the current catalog price.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
