package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier holds vendor contact data plus running totals recomputed from
// purchase records on every purchase write.
type Supplier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"not null"`
	Phone          *string   `gorm:"type:varchar(15)"`
	Email          *string
	Address        *string
	GSTIN          *string         `gorm:"type:varchar(20);column:gstin"`
	TotalPurchased decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalPending   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
