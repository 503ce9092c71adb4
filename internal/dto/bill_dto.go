package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// BillItemRequest carries product id + quantity only. Price and cost are
// ALWAYS re-read from the catalog server-side; client-sent prices are never
// trusted for financial totals.
type BillItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// PaymentDetailRequest is the mixed-payment breakdown. For mode=mixed the
// three amounts must sum exactly to the computed grand total.
type PaymentDetailRequest struct {
	Cash decimal.Decimal `json:"cash" validate:"min=0"`
	UPI  decimal.Decimal `json:"upi"  validate:"min=0"`
	Card decimal.Decimal `json:"card" validate:"min=0"`
}

type CreateBillRequest struct {
	Items          []BillItemRequest    `json:"items" validate:"required,min=1,dive"`
	DiscountPct    decimal.Decimal      `json:"discount_pct" validate:"min=0,max=100"`
	PaymentMode    string               `json:"payment_mode" validate:"required,oneof=cash upi card mixed"`
	Payment        PaymentDetailRequest `json:"payment"`
	CustomerName   *string              `json:"customer_name"   validate:"omitempty,max=120"`
	CustomerMobile *string              `json:"customer_mobile" validate:"omitempty,len=10,numeric"`
	SeatNumber     *string              `json:"seat_number"     validate:"omitempty,max=10"`
}

type CancelBillRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ReturnItemRequest identifies one returned line; quantity may be less than
// the billed quantity for a partial return.
type ReturnItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type ReturnBillItemsRequest struct {
	Items  []ReturnItemRequest `json:"items"  validate:"required,min=1,dive"`
	Reason string              `json:"reason" validate:"required,min=5"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type BillFilter struct {
	Date   string `form:"date"`                     // YYYY-MM-DD; empty = today
	Status string `form:"status,default=completed"` // completed | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BillItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type BillPaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type BillResponse struct {
	ID             string                `json:"id"`
	BillNumber     int                   `json:"bill_number"`
	Items          []BillItemResponse    `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	DiscountPct    decimal.Decimal       `json:"discount_pct"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	GSTPct         decimal.Decimal       `json:"gst_pct"`
	GSTAmount      decimal.Decimal       `json:"gst_amount"`
	RoundOff       decimal.Decimal       `json:"round_off"`
	GrandTotal     decimal.Decimal       `json:"grand_total"`
	PaymentMode    string                `json:"payment_mode"`
	Payments       []BillPaymentResponse `json:"payments"`
	Status         string                `json:"status"`
	CashierID      string                `json:"cashier_id"`
	OrderID        *string               `json:"order_id,omitempty"`
	CustomerName   *string               `json:"customer_name,omitempty"`
	CustomerMobile *string               `json:"customer_mobile,omitempty"`
	SeatNumber     *string               `json:"seat_number,omitempty"`
	CreatedAt      string                `json:"created_at"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
