package dto

// ─── Stock movements (audit ledger, read-only) ──────────────────────────────

type StockMovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Product     string  `json:"product,omitempty"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// ─── Low-stock alerts ────────────────────────────────────────────────────────

type StockAlertResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	CurrentStock  int    `json:"current_stock"`
	MinStockAlert int    `json:"min_stock_alert"`
}

// ─── Ready items ─────────────────────────────────────────────────────────────

type CreateReadyItemRequest struct {
	Name       string `json:"name"        validate:"required,min=2,max=120"`
	ProductID  string `json:"product_id"  validate:"required,uuid"`
	DefaultQty int    `json:"default_qty" validate:"required,min=1"`
}

// RestockRequest quantity 0 falls back to the template's default quantity.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type ReadyItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProductID  string `json:"product_id"`
	Product    string `json:"product,omitempty"`
	DefaultQty int    `json:"default_qty"`
	Active     bool   `json:"active"`
}
