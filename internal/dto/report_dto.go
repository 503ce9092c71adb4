package dto

import "github.com/shopspring/decimal"

// ReportFilter bounds read-side aggregations. Empty dates default to today.
type ReportFilter struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
}

// DailySales is one row of the sales-by-date report.
type DailySales struct {
	Date       string          `json:"date"`
	BillCount  int64           `json:"bill_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	GST        decimal.Decimal `json:"gst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type SalesReportResponse struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Days  []DailySales    `json:"days"`
	Total decimal.Decimal `json:"total"`
}

// ItemSales aggregates quantity, revenue and profit per catalog item.
// Profit uses the cost price snapshotted on each bill line.
type ItemSales struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

type ItemReportResponse struct {
	From  string      `json:"from"`
	To    string      `json:"to"`
	Items []ItemSales `json:"items"`
}

// CashierSales aggregates collections per cashier.
type CashierSales struct {
	CashierID string          `json:"cashier_id"`
	Cashier   string          `json:"cashier"`
	BillCount int64           `json:"bill_count"`
	Total     decimal.Decimal `json:"total"`
}

type CashierReportResponse struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Cashiers []CashierSales `json:"cashiers"`
}

// ShowCollection buckets collections into cinema show windows.
type ShowCollection struct {
	Show  string          `json:"show"`
	Total decimal.Decimal `json:"total"`
}

type ShowReportResponse struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Shows []ShowCollection `json:"shows"`
}
