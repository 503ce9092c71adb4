package model

import (
	"time"

	"github.com/google/uuid"
)

// ReadyItem is a preconfigured restock template: one click adds DefaultQty
// units of the linked product (popcorn batches, samosa trays, etc.).
type ReadyItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"not null"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DefaultQty int       `gorm:"not null;default:1"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
