package dto

import "github.com/shopspring/decimal"

type CreateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,min=7,max=15"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"   validate:"omitempty,len=15"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,min=7,max=15"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"   validate:"omitempty,len=15"`
}

type SupplierResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone"`
	Email          *string         `json:"email"`
	Address        *string         `json:"address"`
	GSTIN          *string         `json:"gstin"`
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	Active         bool            `json:"active"`
}
