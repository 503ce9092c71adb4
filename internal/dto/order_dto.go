package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// CreateOrderRequest comes from the customer self-order menu or the cashier.
// At least one of seat_number / mobile_number is required (service-level check).
type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	SeatNumber   *string            `json:"seat_number"   validate:"omitempty,min=1,max=10"`
	MobileNumber *string            `json:"mobile_number" validate:"omitempty,len=10,numeric"`
}

// UpdateOrderStatusRequest moves an order through the kitchen states.
// "completed" is not accepted here — completion only happens when the order
// is converted into a bill.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=preparing ready cancelled"`
}

// ConvertOrderRequest turns a ready/preparing order into a bill.
type ConvertOrderRequest struct {
	PaymentMode string                `json:"payment_mode" validate:"required,oneof=cash upi card mixed"`
	Payment     PaymentDetailRequest  `json:"payment"`
	DiscountPct decimal.Decimal       `json:"discount_pct" validate:"min=0,max=100"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrderFilter struct {
	Status string `form:"status"` // pending | preparing | ready | completed | cancelled | all
	Date   string `form:"date"`   // YYYY-MM-DD; empty = today
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	OrderNumber  int                 `json:"order_number"`
	SeatNumber   *string             `json:"seat_number"`
	MobileNumber *string             `json:"mobile_number"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	BillID       *string             `json:"bill_id,omitempty"`
	CreatedAt    string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
