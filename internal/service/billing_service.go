package service

import (
	"context"
	"fmt"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/config"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"
	"github.com/kallesh653/smartcafee-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillingService interface {
	// CreateBill is the direct cart checkout: prices are re-read from the
	// catalog, never taken from the client.
	CreateBill(ctx context.Context, cashierID uuid.UUID, req dto.CreateBillRequest) (*dto.BillResponse, error)
	// ConvertOrder bills an existing order using its snapshot prices.
	ConvertOrder(ctx context.Context, orderID, cashierID uuid.UUID, role string, req dto.ConvertOrderRequest) (*dto.BillResponse, error)
	// CancelBill flips status to cancelled and restores the stock that the
	// bill consumed, in one transaction.
	CancelBill(ctx context.Context, id uuid.UUID, reason string) error
	// ReturnItems restores stock for individual returned lines of a completed
	// bill, with return ledger entries. The bill stays completed; the refund
	// itself is a cash-drawer matter.
	ReturnItems(ctx context.Context, id uuid.UUID, req dto.ReturnBillItemsRequest) error
	GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error)
}

type billingService struct {
	bills      repository.BillRepository
	orders     repository.OrderRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewBillingService(
	bills repository.BillRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) BillingService {
	return &billingService{
		bills:      bills,
		orders:     orders,
		products:   products,
		movements:  movements,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// billLine is a server-resolved cart line. unitPrice and costPrice always
// come from the catalog (direct checkout) or the order snapshot (conversion).
type billLine struct {
	productID uuid.UUID
	name      string
	quantity  int
	unitPrice decimal.Decimal
	costPrice decimal.Decimal
	lineTotal decimal.Decimal
}

// billTotals carries the computed money fields.
// Invariant: grandTotal = round(subtotal - discountAmount + gstAmount) and
// roundOff = grandTotal - (subtotal - discountAmount + gstAmount).
type billTotals struct {
	subtotal       decimal.Decimal
	discountPct    decimal.Decimal
	discountAmount decimal.Decimal
	gstPct         decimal.Decimal
	gstAmount      decimal.Decimal
	roundOff       decimal.Decimal
	grandTotal     decimal.Decimal
}

func (s *billingService) gstPct() decimal.Decimal {
	if s.cfg == nil || !s.cfg.GSTEnabled {
		return decimal.Zero
	}
	return decimal.NewFromFloat(s.cfg.GSTPercent)
}

func computeTotals(lines []billLine, discountPct, gstPct decimal.Decimal) billTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.lineTotal)
	}
	discountAmount := subtotal.Mul(discountPct).Div(decimal.NewFromInt(100))
	gstAmount := subtotal.Sub(discountAmount).Mul(gstPct).Div(decimal.NewFromInt(100))
	exact := subtotal.Sub(discountAmount).Add(gstAmount)
	grandTotal := exact.Round(0)
	return billTotals{
		subtotal:       subtotal,
		discountPct:    discountPct,
		discountAmount: discountAmount,
		gstPct:         gstPct,
		gstAmount:      gstAmount,
		roundOff:       grandTotal.Sub(exact),
		grandTotal:     grandTotal,
	}
}

// buildPayments validates the payment breakdown against the grand total and
// returns the payment rows to persist. For mixed mode the three legs must sum
// to the grand total EXACTLY — no tolerance — or the bill is rejected before
// anything is persisted.
func buildPayments(mode string, detail dto.PaymentDetailRequest, grandTotal decimal.Decimal) ([]model.BillPayment, error) {
	if mode != model.PayMixed {
		return []model.BillPayment{{Method: mode, Amount: grandTotal}}, nil
	}

	sum := detail.Cash.Add(detail.UPI).Add(detail.Card)
	if !sum.Equal(grandTotal) {
		return nil, apierror.PaymentMismatch(fmt.Sprintf(
			"mixed payment legs sum to %s, grand total is %s", sum.String(), grandTotal.String()))
	}

	var payments []model.BillPayment
	for _, leg := range []struct {
		method string
		amount decimal.Decimal
	}{
		{model.PayCash, detail.Cash},
		{model.PayUPI, detail.UPI},
		{model.PayCard, detail.Card},
	} {
		if leg.amount.IsPositive() {
			payments = append(payments, model.BillPayment{Method: leg.method, Amount: leg.amount})
		}
	}
	if len(payments) == 0 {
		return nil, apierror.PaymentMismatch("mixed payment requires at least one non-zero leg")
	}
	return payments, nil
}

// ── CreateBill ────────────────────────────────────────────────────────────────
// Direct cart checkout:
//   1. Resolve each line from the catalog (server-trusted price/cost)
//   2. Compute subtotal / discount / GST / round-off
//   3. Validate payment breakdown
//   4. BEGIN TX: nextval bill number, insert bill+items+payments,
//      conditional stock decrement per tracked line, ledger entries
//   5. COMMIT — a failed decrement rolls back the bill too
//   6. (async) low-stock alert jobs for lines that crossed their threshold

func (s *billingService) CreateBill(ctx context.Context, cashierID uuid.UUID, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	lines, err := s.resolveCatalogLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totals := computeTotals(lines, req.DiscountPct, s.gstPct())

	payments, err := buildPayments(req.PaymentMode, req.Payment, totals.grandTotal)
	if err != nil {
		return nil, err
	}

	bill := &model.Bill{
		PaymentMode:    req.PaymentMode,
		Status:         model.BillCompleted,
		CashierID:      cashierID,
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		SeatNumber:     req.SeatNumber,
	}
	applyTotals(bill, totals)
	bill.Payments = payments
	for _, l := range lines {
		bill.Items = append(bill.Items, model.BillItem{
			ProductID: l.productID,
			Name:      l.name,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			CostPrice: l.costPrice,
			LineTotal: l.lineTotal,
		})
	}

	alerts, txErr := s.persistBill(ctx, bill, lines, nil)
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)

	return billToResponse(bill), nil
}

// resolveCatalogLines re-prices every cart line from the Product record.
// Client-submitted prices are display hints only and never reach this path.
func (s *billingService) resolveCatalogLines(ctx context.Context, items []dto.BillItemRequest) ([]billLine, error) {
	if len(items) == 0 {
		return nil, apierror.Validation("cart is empty")
	}

	lines := make([]billLine, 0, len(items))
	for _, item := range items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product_id: " + item.ProductID)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("product not found: " + item.ProductID)
		}
		if !p.Active {
			return nil, apierror.Validation(fmt.Sprintf("product %q is inactive", p.Name))
		}
		lines = append(lines, billLine{
			productID: pid,
			name:      p.Name,
			quantity:  item.Quantity,
			unitPrice: p.Price,
			costPrice: p.CostPrice,
			lineTotal: p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return lines, nil
}

// stockAlert is collected inside the billing transaction and dispatched after
// commit so a rollback never produces a phantom alert.
type stockAlert struct {
	productID uuid.UUID
	name      string
	stock     int
	minAlert  int
}

// persistBill runs the single unit of consistency: bill insert + per-line
// stock decrement + ledger entries, plus the optional order completion.
func (s *billingService) persistBill(ctx context.Context, bill *model.Bill, lines []billLine, completeOrder *uuid.UUID) ([]stockAlert, error) {
	var alerts []stockAlert

	txErr := runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		billNum, err := s.bills.NextBillNumber(ctx, tx)
		if err != nil {
			return err
		}
		bill.BillNumber = billNum

		if err := s.bills.Create(ctx, tx, bill); err != nil {
			return err
		}

		for _, l := range lines {
			p, err := s.products.FindByIDTx(tx, l.productID)
			if err != nil {
				return apierror.NotFound("product not found: " + l.productID.String())
			}
			if !p.Tracked() {
				continue // unlimited-stock item — no decrement, no ledger entry
			}
			before := *p.CurrentStock

			rows, err := s.products.DecrementStockTx(tx, l.productID, l.quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apierror.InsufficientStock(fmt.Sprintf(
					"insufficient stock for %q: have %d, need %d", l.name, before, l.quantity))
			}
			after := before - l.quantity

			billRef := bill.ID
			mov := &model.StockMovement{
				ProductID:   l.productID,
				Type:        model.MovementSale,
				Quantity:    -l.quantity,
				StockBefore: before,
				StockAfter:  after,
				Reason:      fmt.Sprintf("Bill #%d", billNum),
				ReferenceID: &billRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}

			if p.MinStockAlert != nil && after <= *p.MinStockAlert {
				alerts = append(alerts, stockAlert{
					productID: l.productID, name: l.name, stock: after, minAlert: *p.MinStockAlert,
				})
			}
		}

		if completeOrder != nil {
			billID := bill.ID
			if err := s.orders.UpdateStatusTx(tx, *completeOrder, model.OrderCompleted, &billID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return alerts, nil
}

func (s *billingService) dispatchAlerts(ctx context.Context, alerts []stockAlert) {
	if s.dispatcher == nil {
		return
	}
	for _, a := range alerts {
		// Best-effort — a lost alert is recovered by the periodic sweep.
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
			ProductID:     a.productID.String(),
			Name:          a.name,
			CurrentStock:  a.stock,
			MinStockAlert: a.minAlert,
		})
	}
}

// ── ConvertOrder ──────────────────────────────────────────────────────────────

// convertibleStates enumerates the order states that permit billing.
var convertibleStates = map[string]bool{
	model.OrderPreparing: true,
	model.OrderReady:     true,
}

func (s *billingService) ConvertOrder(ctx context.Context, orderID, cashierID uuid.UUID, role string, req dto.ConvertOrderRequest) (*dto.BillResponse, error) {
	if role != model.RoleAdmin && (s.cfg == nil || !s.cfg.CustomerCanConvertOrderToBill) {
		return nil, apierror.Authorization("order conversion requires admin role")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if !convertibleStates[order.Status] {
		return nil, apierror.InvalidState(fmt.Sprintf(
			"order %d in status %q cannot be converted", order.OrderNumber, order.Status))
	}

	// Re-derive lines from the order snapshot: the customer pays what the
	// menu showed at order time, not today's catalog price. Cost price is
	// read fresh — it only feeds profit reporting.
	lines := make([]billLine, 0, len(order.Items))
	for _, item := range order.Items {
		cost := decimal.Zero
		if p, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			cost = p.CostPrice
		}
		lines = append(lines, billLine{
			productID: item.ProductID,
			name:      item.Name,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
			costPrice: cost,
			lineTotal: item.LineTotal,
		})
	}

	totals := computeTotals(lines, req.DiscountPct, s.gstPct())

	payments, err := buildPayments(req.PaymentMode, req.Payment, totals.grandTotal)
	if err != nil {
		return nil, err
	}

	orderRef := order.ID
	bill := &model.Bill{
		PaymentMode:    req.PaymentMode,
		Status:         model.BillCompleted,
		CashierID:      cashierID,
		OrderID:        &orderRef,
		CustomerMobile: order.MobileNumber,
		SeatNumber:     order.SeatNumber,
	}
	applyTotals(bill, totals)
	bill.Payments = payments
	for _, l := range lines {
		bill.Items = append(bill.Items, model.BillItem{
			ProductID: l.productID,
			Name:      l.name,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			CostPrice: l.costPrice,
			LineTotal: l.lineTotal,
		})
	}

	alerts, txErr := s.persistBill(ctx, bill, lines, &orderRef)
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)

	return billToResponse(bill), nil
}

// ── CancelBill ────────────────────────────────────────────────────────────────
// Cancellation restores stock deterministically: every tracked line gets an
// inverse ledger entry and its quantity added back, atomically with the
// status flip.

func (s *billingService) CancelBill(ctx context.Context, id uuid.UUID, reason string) error {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("bill not found")
	}
	if bill.Status != model.BillCompleted {
		return apierror.InvalidState(fmt.Sprintf("bill #%d is already %s", bill.BillNumber, bill.Status))
	}

	return runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		for _, item := range bill.Items {
			p, err := s.products.FindByIDTx(tx, item.ProductID)
			if err != nil || !p.Tracked() {
				continue // product deleted or untracked — nothing to restore
			}
			before := *p.CurrentStock

			if err := s.products.IncrementStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			billRef := bill.ID
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Type:        model.MovementCancellation,
				Quantity:    item.Quantity,
				StockBefore: before,
				StockAfter:  before + item.Quantity,
				Reason:      fmt.Sprintf("Cancelled bill #%d — %s", bill.BillNumber, reason),
				ReferenceID: &billRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.bills.UpdateStatusTx(tx, id, model.BillCancelled)
	})
}

// ── ReturnItems ───────────────────────────────────────────────────────────────

func (s *billingService) ReturnItems(ctx context.Context, id uuid.UUID, req dto.ReturnBillItemsRequest) error {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("bill not found")
	}
	if bill.Status != model.BillCompleted {
		return apierror.InvalidState(fmt.Sprintf("bill #%d is %s, only completed bills take returns", bill.BillNumber, bill.Status))
	}

	billed := make(map[uuid.UUID]int, len(bill.Items))
	names := make(map[uuid.UUID]string, len(bill.Items))
	for _, item := range bill.Items {
		billed[item.ProductID] += item.Quantity
		names[item.ProductID] = item.Name
	}

	// Validate the whole request before touching stock: every line must be on
	// the bill and the summed return quantity must not exceed what was billed.
	requested := make(map[uuid.UUID]int, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return apierror.Validation("invalid product_id: " + item.ProductID)
		}
		billedQty, ok := billed[pid]
		if !ok {
			return apierror.Validation("product not on bill: " + item.ProductID)
		}
		requested[pid] += item.Quantity
		if requested[pid] > billedQty {
			return apierror.Validation(fmt.Sprintf(
				"cannot return %d of %q, bill #%d has %d", requested[pid], names[pid], bill.BillNumber, billedQty))
		}
	}

	return runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		for pid, qty := range requested {
			p, err := s.products.FindByIDTx(tx, pid)
			if err != nil || !p.Tracked() {
				continue // product deleted or untracked — nothing to restore
			}
			before := *p.CurrentStock

			if err := s.products.IncrementStockTx(tx, pid, qty); err != nil {
				return err
			}

			billRef := bill.ID
			mov := &model.StockMovement{
				ProductID:   pid,
				Type:        model.MovementReturn,
				Quantity:    qty,
				StockBefore: before,
				StockAfter:  before + qty,
				Reason:      fmt.Sprintf("Return against bill #%d — %s", bill.BillNumber, req.Reason),
				ReferenceID: &billRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *billingService) GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("bill not found")
	}
	return billToResponse(bill), nil
}

func (s *billingService) ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = model.BillCompleted
	}
	bills, total, err := s.bills.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *billToResponse(&bills[i]))
	}
	return &dto.BillListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func applyTotals(b *model.Bill, t billTotals) {
	b.Subtotal = t.subtotal
	b.DiscountPct = t.discountPct
	b.DiscountAmount = t.discountAmount
	b.GSTPct = t.gstPct
	b.GSTAmount = t.gstAmount
	b.RoundOff = t.roundOff
	b.GrandTotal = t.grandTotal
}

func billToResponse(b *model.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.BillItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	payments := make([]dto.BillPaymentResponse, 0, len(b.Payments))
	for _, p := range b.Payments {
		payments = append(payments, dto.BillPaymentResponse{Method: p.Method, Amount: p.Amount})
	}
	var orderID *string
	if b.OrderID != nil {
		v := b.OrderID.String()
		orderID = &v
	}
	return &dto.BillResponse{
		ID:             b.ID.String(),
		BillNumber:     b.BillNumber,
		Items:          items,
		Subtotal:       b.Subtotal,
		DiscountPct:    b.DiscountPct,
		DiscountAmount: b.DiscountAmount,
		GSTPct:         b.GSTPct,
		GSTAmount:      b.GSTAmount,
		RoundOff:       b.RoundOff,
		GrandTotal:     b.GrandTotal,
		PaymentMode:    b.PaymentMode,
		Payments:       payments,
		Status:         b.Status,
		CashierID:      b.CashierID.String(),
		OrderID:        orderID,
		CustomerName:   b.CustomerName,
		CustomerMobile: b.CustomerMobile,
		SeatNumber:     b.SeatNumber,
		CreatedAt:      b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
