package service_test

// Shared in-memory repository stubs. Services open no real transaction in
// unit tests: repositories expose DB() == nil, so runTx calls the closure
// with a nil *gorm.DB and the stubs ignore the tx argument.

import (
	"context"
	"errors"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("not found")

// ── ProductRepository stub ────────────────────────────────────────────────────

type stubProductRepo struct {
	products  map[uuid.UUID]*model.Product
	serialSeq int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

// seedProduct registers a tracked product; stock < 0 creates an untracked one.
func seedProduct(r *stubProductRepo, name string, price float64, stock int, minAlert int) *model.Product {
	r.serialSeq++
	p := &model.Product{
		ID:        uuid.New(),
		SerialNo:  r.serialSeq,
		Name:      name,
		Price:     decimal.NewFromFloat(price),
		CostPrice: decimal.NewFromFloat(price / 2),
		Active:    true,
	}
	if stock >= 0 {
		s := stock
		p.CurrentStock = &s
	}
	if minAlert > 0 {
		m := minAlert
		p.MinStockAlert = &m
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubProductRepo) NextSerialNo(_ context.Context) (int, error) {
	r.serialSeq++
	return r.serialSeq, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.CurrentStock == nil || *p.CurrentStock < qty {
		return 0, nil // conditional update matched no rows
	}
	*p.CurrentStock -= qty
	return 1, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return errNotFound
	}
	if p.CurrentStock != nil {
		*p.CurrentStock += qty
	}
	return nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int, override bool) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.CurrentStock == nil {
		return 0, nil
	}
	next := *p.CurrentStock + delta
	if next < 0 {
		if !override {
			return 0, nil
		}
		next = 0
	}
	*p.CurrentStock = next
	return 1, nil
}

func (r *stubProductRepo) ListBelowMinAlert(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.CurrentStock != nil && p.MinStockAlert != nil && *p.CurrentStock <= *p.MinStockAlert {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── BillRepository stub ───────────────────────────────────────────────────────

type stubBillRepo struct {
	bills   map[uuid.UUID]*model.Bill
	billSeq int
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (r *stubBillRepo) Create(_ context.Context, _ *gorm.DB, b *model.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	r.bills[b.ID] = b
	return nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, errNotFound
	}
	return b, nil
}

func (r *stubBillRepo) List(_ context.Context, _ dto.BillFilter) ([]model.Bill, int64, error) {
	out := make([]model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBillRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	b, ok := r.bills[id]
	if !ok {
		return errNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBillRepo) NextBillNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.billSeq++
	return r.billSeq, nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

var _ repository.BillRepository = (*stubBillRepo)(nil)

// ── OrderRepository stub ──────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	orderSeq int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	return r.UpdateStatusTx(nil, id, status, nil)
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string, billID *uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok {
		return errNotFound
	}
	o.Status = status
	if billID != nil {
		o.BillID = billID
	}
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.orderSeq++
	return r.orderSeq, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── StockMovementRepository stub ──────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── CategoryRepository stub ───────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.Active = false
	}
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── SupplierRepository stub ───────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.suppliers[id]; ok {
		s.Active = false
	}
	return nil
}

func (r *stubSupplierRepo) UpdateTotalsTx(_ *gorm.DB, id uuid.UUID, purchased, pending decimal.Decimal) error {
	s, ok := r.suppliers[id]
	if !ok {
		return errNotFound
	}
	s.TotalPurchased = purchased
	s.TotalPending = pending
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── PurchaseRepository stub ───────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases   map[uuid.UUID]*model.Purchase
	purchaseSeq int
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, _ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) NextPurchaseNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.purchaseSeq++
	return r.purchaseSeq, nil
}

func (r *stubPurchaseRepo) SumBySupplierTx(_ *gorm.DB, supplierID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	purchased, pending := decimal.Zero, decimal.Zero
	for _, p := range r.purchases {
		if p.SupplierID == supplierID {
			purchased = purchased.Add(p.InvoiceAmount)
			pending = pending.Add(p.PendingAmount)
		}
	}
	return purchased, pending, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── ReadyItemRepository stub ──────────────────────────────────────────────────

type stubReadyItemRepo struct {
	items map[uuid.UUID]*model.ReadyItem
}

func newStubReadyItemRepo() *stubReadyItemRepo {
	return &stubReadyItemRepo{items: make(map[uuid.UUID]*model.ReadyItem)}
}

func (r *stubReadyItemRepo) Create(_ context.Context, ri *model.ReadyItem) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	r.items[ri.ID] = ri
	return nil
}

func (r *stubReadyItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReadyItem, error) {
	ri, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	return ri, nil
}

func (r *stubReadyItemRepo) List(_ context.Context) ([]model.ReadyItem, error) {
	out := make([]model.ReadyItem, 0, len(r.items))
	for _, ri := range r.items {
		if ri.Active {
			out = append(out, *ri)
		}
	}
	return out, nil
}

func (r *stubReadyItemRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if ri, ok := r.items[id]; ok {
		ri.Active = false
	}
	return nil
}

var _ repository.ReadyItemRepository = (*stubReadyItemRepo)(nil)

// ── UserRepository stub ───────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── ReportRepository stub ─────────────────────────────────────────────────────

type stubReportRepo struct {
	daily   []dto.DailySales
	items   []dto.ItemSales
	cashier []dto.CashierSales
	hours   []repository.HourlyTotal
}

func (r *stubReportRepo) SalesByDate(_ context.Context, _, _ time.Time) ([]dto.DailySales, error) {
	return r.daily, nil
}

func (r *stubReportRepo) ItemSales(_ context.Context, _, _ time.Time) ([]dto.ItemSales, error) {
	return r.items, nil
}

func (r *stubReportRepo) CashierSales(_ context.Context, _, _ time.Time) ([]dto.CashierSales, error) {
	return r.cashier, nil
}

func (r *stubReportRepo) HourlyCollection(_ context.Context, _, _ time.Time) ([]repository.HourlyTotal, error) {
	return r.hours, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)
