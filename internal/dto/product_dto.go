package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"        validate:"required,min=2,max=120"`
	CategoryID string          `json:"category_id" validate:"required,uuid"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"       validate:"required,gt=0"`
	CostPrice  decimal.Decimal `json:"cost_price"  validate:"min=0"`
	// CurrentStock nil = untracked (unlimited) item.
	CurrentStock  *int `json:"current_stock"   validate:"omitempty,min=0"`
	MinStockAlert *int `json:"min_stock_alert" validate:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,uuid"`
	Unit          *string          `json:"unit"`
	Price         *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	CostPrice     *decimal.Decimal `json:"cost_price"  validate:"omitempty,min=0"`
	MinStockAlert *int             `json:"min_stock_alert" validate:"omitempty,min=0"`
}

// AdjustStockRequest carries a signed delta. Override permits an admin
// correction that the non-negativity guard would otherwise reject.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" validate:"required"`
	Reason   string `json:"reason"   validate:"required,min=3"`
	Override bool   `json:"override"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"` // "false" | "all" | default active only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	SerialNo      int             `json:"serial_no"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	CurrentStock  *int            `json:"current_stock"`
	MinStockAlert *int            `json:"min_stock_alert"`
	Active        bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Customer menu (public, cached) ─────────────────────────────────────────

type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	InStock   bool            `json:"in_stock"`
}

type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

type MenuResponse struct {
	Sections []MenuSection `json:"sections"`
}
