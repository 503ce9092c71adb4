package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementSale         = "sale"
	MovementPurchase     = "purchase"
	MovementAdjustment   = "adjustment"
	MovementReturn       = "return"
	MovementCancellation = "cancellation"
	MovementRestock      = "restock"
)

// StockMovement records every stock change on a tracked product.
// Rows are append-only and NEVER modified or deleted after write —
// corrections create new adjustment entries.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Quantity    int       `gorm:"not null"` // positive = inbound, negative = outbound
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	// ReferenceID links the originating bill / purchase / ready-item restock.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
