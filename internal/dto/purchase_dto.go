package dto

import "github.com/shopspring/decimal"

// PurchaseItemRequest: product_id nil marks a raw-material line that feeds the
// supplier ledger only (no stock movement).
type PurchaseItemRequest struct {
	ProductID *string         `json:"product_id" validate:"omitempty,uuid"`
	Name      string          `json:"name"       validate:"required,min=2,max=120"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitRate  decimal.Decimal `json:"unit_rate"  validate:"required,gt=0"`
}

type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id" validate:"required,uuid"`
	InvoiceNumber *string               `json:"invoice_number"`
	InvoiceDate   *string               `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount    decimal.Decimal       `json:"paid_amount" validate:"min=0"`
	GSTAmount     decimal.Decimal       `json:"gst_amount"  validate:"min=0"`
	Notes         *string               `json:"notes"`
}

type PurchaseFilter struct {
	SupplierID string `form:"supplier_id"`
	From       string `form:"from"` // YYYY-MM-DD
	To         string `form:"to"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseItemResponse struct {
	ProductID *string         `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitRate  decimal.Decimal `json:"unit_rate"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber int                    `json:"purchase_number"`
	SupplierID     string                 `json:"supplier_id"`
	Supplier       string                 `json:"supplier,omitempty"`
	InvoiceNumber  *string                `json:"invoice_number"`
	InvoiceDate    *string                `json:"invoice_date"`
	Items          []PurchaseItemResponse `json:"items"`
	InvoiceAmount  decimal.Decimal        `json:"invoice_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	PendingAmount  decimal.Decimal        `json:"pending_amount"`
	GSTAmount      decimal.Decimal        `json:"gst_amount"`
	CreatedAt      string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
