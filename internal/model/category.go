package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the customer menu (snacks, beverages, combos…).
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"uniqueIndex;not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Category) TableName() string { return "categories" }
