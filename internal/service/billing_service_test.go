package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/config"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBillingSvc(cfg *config.Config) (service.BillingService, *stubBillRepo, *stubOrderRepo, *stubProductRepo, *stubMovementRepo) {
	bills := newStubBillRepo()
	orders := newStubOrderRepo()
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	svc := service.NewBillingService(bills, orders, products, movements, nil, cfg)
	return svc, bills, orders, products, movements
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func apiCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr), "expected *apierror.Error, got %v", err)
	return apiErr.Code
}

func TestCreateBill_SimpleCash(t *testing.T) {
	svc, _, _, products, movements := buildBillingSvc(&config.Config{})
	popcorn := seedProduct(products, "Popcorn Large", 50, 20, 5)
	cashier := uuid.New()

	resp, err := svc.CreateBill(context.Background(), cashier, dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: popcorn.ID.String(), Quantity: 2}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.BillNumber)
	assert.True(t, resp.Subtotal.Equal(dec(100)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.GrandTotal.Equal(dec(100)), "grand total %s", resp.GrandTotal)
	assert.True(t, resp.RoundOff.IsZero())
	assert.Equal(t, model.BillCompleted, resp.Status)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, model.PayCash, resp.Payments[0].Method)
	assert.True(t, resp.Payments[0].Amount.Equal(dec(100)))

	// stock decremented and one sale ledger entry written
	assert.Equal(t, 18, *products.products[popcorn.ID].CurrentStock)
	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, model.MovementSale, mov.Type)
	assert.Equal(t, -2, mov.Quantity)
	assert.Equal(t, 20, mov.StockBefore)
	assert.Equal(t, 18, mov.StockAfter)
}

func TestCreateBill_DiscountAndRoundOff(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{})
	combo := seedProduct(products, "Combo Snack", 133, 10, 0)

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: combo.ID.String(), Quantity: 1}},
		DiscountPct: dec(10),
		PaymentMode: model.PayUPI,
	})
	require.NoError(t, err)

	// 133 - 10% = 119.70 → rounds to 120 with +0.30 round-off
	assert.True(t, resp.DiscountAmount.Equal(dec(13.3)), "discount %s", resp.DiscountAmount)
	assert.True(t, resp.GrandTotal.Equal(dec(120)), "grand total %s", resp.GrandTotal)
	assert.True(t, resp.RoundOff.Equal(dec(0.3)), "round-off %s", resp.RoundOff)
}

func TestCreateBill_GSTApplied(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{GSTEnabled: true, GSTPercent: 5})
	tea := seedProduct(products, "Masala Tea", 100, -1, 0) // untracked

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: tea.ID.String(), Quantity: 2}},
		PaymentMode: model.PayCard,
	})
	require.NoError(t, err)

	// 200 + 5% GST = 210, no rounding needed
	assert.True(t, resp.GSTAmount.Equal(dec(10)), "gst %s", resp.GSTAmount)
	assert.True(t, resp.GrandTotal.Equal(dec(210)), "grand total %s", resp.GrandTotal)
	assert.True(t, resp.RoundOff.IsZero())
}

func TestCreateBill_MixedPaymentExactSum(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{})
	nachos := seedProduct(products, "Nachos", 100, 10, 0)

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: nachos.ID.String(), Quantity: 2}},
		PaymentMode: model.PayMixed,
		Payment:     dto.PaymentDetailRequest{Cash: dec(150), UPI: dec(50)},
	})
	require.NoError(t, err)

	// zero card leg is dropped, the two non-zero legs are persisted
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, model.PayCash, resp.Payments[0].Method)
	assert.True(t, resp.Payments[0].Amount.Equal(dec(150)))
	assert.Equal(t, model.PayUPI, resp.Payments[1].Method)
	assert.True(t, resp.Payments[1].Amount.Equal(dec(50)))
}

func TestCreateBill_MixedPaymentMismatchRejected(t *testing.T) {
	svc, bills, _, products, movements := buildBillingSvc(&config.Config{})
	nachos := seedProduct(products, "Nachos", 100, 10, 0)

	_, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: nachos.ID.String(), Quantity: 2}},
		PaymentMode: model.PayMixed,
		Payment:     dto.PaymentDetailRequest{Cash: dec(100), UPI: dec(90)}, // 190 ≠ 200
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodePaymentMismatch, apiCode(t, err))

	// rejected before anything is persisted
	assert.Empty(t, bills.bills)
	assert.Empty(t, movements.movements)
	assert.Equal(t, 10, *products.products[nachos.ID].CurrentStock)
}

func TestCreateBill_InsufficientStockRejectsWholeBill(t *testing.T) {
	svc, bills, _, products, movements := buildBillingSvc(&config.Config{})
	water := seedProduct(products, "Water Bottle", 20, 100, 0)
	samosa := seedProduct(products, "Samosa", 15, 3, 0)

	_, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items: []dto.BillItemRequest{
			{ProductID: water.ID.String(), Quantity: 2},
			{ProductID: samosa.ID.String(), Quantity: 5}, // only 3 left
		},
		PaymentMode: model.PayCash,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInsufficientStock, apiCode(t, err))
	assert.Contains(t, err.Error(), "have 3, need 5")

	assert.Empty(t, bills.bills)
	assert.Empty(t, movements.movements)
	// Note: the stub has no rollback, so only the DB-backed path restores the
	// water decrement. What matters here is the error and that no bill exists.
	assert.Equal(t, 3, *products.products[samosa.ID].CurrentStock)
}

func TestCreateBill_UntrackedItemSkipsLedger(t *testing.T) {
	svc, _, _, products, movements := buildBillingSvc(&config.Config{})
	coffee := seedProduct(products, "Filter Coffee", 40, -1, 0) // untracked

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: coffee.ID.String(), Quantity: 3}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)
	assert.True(t, resp.GrandTotal.Equal(dec(120)))
	assert.Nil(t, products.products[coffee.ID].CurrentStock)
	assert.Empty(t, movements.movements)
}

func TestCreateBill_InactiveProductRejected(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{})
	old := seedProduct(products, "Discontinued Combo", 99, 5, 0)
	old.Active = false

	_, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: old.ID.String(), Quantity: 1}},
		PaymentMode: model.PayCash,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))
}

func TestCreateBill_PricesComeFromCatalogNotClient(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{})
	popcorn := seedProduct(products, "Popcorn", 80, 10, 0)

	// BillItemRequest carries no price field at all; the catalog decides.
	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: popcorn.ID.String(), Quantity: 1}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec(80)))
}

func TestConvertOrder_UsesSnapshotPrice(t *testing.T) {
	svc, _, orders, products, _ := buildBillingSvc(&config.Config{})
	popcorn := seedProduct(products, "Popcorn", 70, 20, 0) // price already raised

	order := &model.Order{
		ID:          uuid.New(),
		OrderNumber: 7,
		Status:      model.OrderReady,
		Items: []model.OrderItem{{
			ProductID: popcorn.ID,
			Name:      "Popcorn",
			Quantity:  2,
			UnitPrice: dec(60), // price when the customer ordered
			LineTotal: dec(120),
		}},
		TotalAmount: dec(120),
	}
	orders.orders[order.ID] = order

	resp, err := svc.ConvertOrder(context.Background(), order.ID, uuid.New(), model.RoleAdmin, dto.ConvertOrderRequest{
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)

	assert.True(t, resp.Items[0].UnitPrice.Equal(dec(60)), "must bill the snapshot price")
	assert.True(t, resp.GrandTotal.Equal(dec(120)))

	// order completed and linked to the bill in the same transaction
	assert.Equal(t, model.OrderCompleted, order.Status)
	require.NotNil(t, order.BillID)
	assert.Equal(t, resp.ID, order.BillID.String())
	require.NotNil(t, resp.OrderID)
	assert.Equal(t, order.ID.String(), *resp.OrderID)

	// conversion still consumes stock
	assert.Equal(t, 18, *products.products[popcorn.ID].CurrentStock)
}

func TestConvertOrder_RequiresAdminUnlessFlagOpen(t *testing.T) {
	ctx := context.Background()
	mkOrder := func(orders *stubOrderRepo, products *stubProductRepo) *model.Order {
		p := seedProduct(products, "Cold Drink", 30, 50, 0)
		o := &model.Order{
			ID:     uuid.New(),
			Status: model.OrderReady,
			Items: []model.OrderItem{{
				ProductID: p.ID, Name: p.Name, Quantity: 1, UnitPrice: dec(30), LineTotal: dec(30),
			}},
		}
		orders.orders[o.ID] = o
		return o
	}

	// flag closed: cashier blocked
	svc, _, orders, products, _ := buildBillingSvc(&config.Config{})
	order := mkOrder(orders, products)
	_, err := svc.ConvertOrder(ctx, order.ID, uuid.New(), model.RoleCashier, dto.ConvertOrderRequest{PaymentMode: model.PayCash})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeAuthorization, apiCode(t, err))

	// flag open: cashier allowed
	svc, _, orders, products, _ = buildBillingSvc(&config.Config{CustomerCanConvertOrderToBill: true})
	order = mkOrder(orders, products)
	_, err = svc.ConvertOrder(ctx, order.ID, uuid.New(), model.RoleCashier, dto.ConvertOrderRequest{PaymentMode: model.PayCash})
	require.NoError(t, err)
}

func TestConvertOrder_OnlyPreparingOrReady(t *testing.T) {
	svc, _, orders, products, _ := buildBillingSvc(&config.Config{})
	p := seedProduct(products, "Fries", 60, 10, 0)

	for _, status := range []string{model.OrderPending, model.OrderCompleted, model.OrderCancelled} {
		order := &model.Order{
			ID:     uuid.New(),
			Status: status,
			Items: []model.OrderItem{{
				ProductID: p.ID, Name: p.Name, Quantity: 1, UnitPrice: dec(60), LineTotal: dec(60),
			}},
		}
		orders.orders[order.ID] = order

		_, err := svc.ConvertOrder(context.Background(), order.ID, uuid.New(), model.RoleAdmin, dto.ConvertOrderRequest{PaymentMode: model.PayCash})
		require.Error(t, err, "status %s must not convert", status)
		assert.Equal(t, apierror.CodeInvalidState, apiCode(t, err))
	}
}

func TestCancelBill_RestoresStock(t *testing.T) {
	svc, bills, _, products, movements := buildBillingSvc(&config.Config{})
	popcorn := seedProduct(products, "Popcorn", 50, 20, 0)
	cashier := uuid.New()

	resp, err := svc.CreateBill(context.Background(), cashier, dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: popcorn.ID.String(), Quantity: 4}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)
	require.Equal(t, 16, *products.products[popcorn.ID].CurrentStock)

	billID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.CancelBill(context.Background(), billID, "wrong order punched"))

	assert.Equal(t, model.BillCancelled, bills.bills[billID].Status)
	assert.Equal(t, 20, *products.products[popcorn.ID].CurrentStock)

	// sale entry plus the inverse cancellation entry
	require.Len(t, movements.movements, 2)
	inv := movements.movements[1]
	assert.Equal(t, model.MovementCancellation, inv.Type)
	assert.Equal(t, 4, inv.Quantity)
	assert.Equal(t, 16, inv.StockBefore)
	assert.Equal(t, 20, inv.StockAfter)
	assert.Contains(t, inv.Reason, "wrong order punched")
}

func TestCancelBill_OnlyCompletedBills(t *testing.T) {
	svc, bills, _, _, _ := buildBillingSvc(&config.Config{})
	bill := &model.Bill{ID: uuid.New(), BillNumber: 9, Status: model.BillCancelled}
	bills.bills[bill.ID] = bill

	err := svc.CancelBill(context.Background(), bill.ID, "double cancel")
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apiCode(t, err))
}

func TestCancelBill_DeletedProductSkippedGracefully(t *testing.T) {
	svc, bills, _, _, movements := buildBillingSvc(&config.Config{})
	bill := &model.Bill{
		ID:         uuid.New(),
		BillNumber: 3,
		Status:     model.BillCompleted,
		Items: []model.BillItem{{
			ProductID: uuid.New(), // no longer in the catalog
			Name:      "Retired Snack",
			Quantity:  1,
		}},
	}
	bills.bills[bill.ID] = bill

	require.NoError(t, svc.CancelBill(context.Background(), bill.ID, "refund"))
	assert.Equal(t, model.BillCancelled, bill.Status)
	assert.Empty(t, movements.movements)
}

func TestReturnItems_RestoresStockWithReturnEntries(t *testing.T) {
	svc, bills, _, products, movements := buildBillingSvc(&config.Config{})
	popcorn := seedProduct(products, "Popcorn", 50, 20, 0)

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: popcorn.ID.String(), Quantity: 3}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)
	require.Equal(t, 17, *products.products[popcorn.ID].CurrentStock)

	billID := uuid.MustParse(resp.ID)
	err = svc.ReturnItems(context.Background(), billID, dto.ReturnBillItemsRequest{
		Items:  []dto.ReturnItemRequest{{ProductID: popcorn.ID.String(), Quantity: 2}},
		Reason: "stale batch",
	})
	require.NoError(t, err)

	// partial return: two of the three billed units go back on the shelf
	assert.Equal(t, 19, *products.products[popcorn.ID].CurrentStock)
	// the bill itself stays completed; the refund lives in the drawer
	assert.Equal(t, model.BillCompleted, bills.bills[billID].Status)

	// sale entry plus the return entry
	require.Len(t, movements.movements, 2)
	ret := movements.movements[1]
	assert.Equal(t, model.MovementReturn, ret.Type)
	assert.Equal(t, 2, ret.Quantity)
	assert.Equal(t, 17, ret.StockBefore)
	assert.Equal(t, 19, ret.StockAfter)
	assert.Contains(t, ret.Reason, "stale batch")
	require.NotNil(t, ret.ReferenceID)
	assert.Equal(t, billID, *ret.ReferenceID)
}

func TestReturnItems_CannotExceedBilledQuantity(t *testing.T) {
	svc, _, _, products, movements := buildBillingSvc(&config.Config{})
	samosa := seedProduct(products, "Samosa", 15, 10, 0)

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: samosa.ID.String(), Quantity: 2}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)

	// split across two lines that together exceed the billed quantity
	err = svc.ReturnItems(context.Background(), uuid.MustParse(resp.ID), dto.ReturnBillItemsRequest{
		Items: []dto.ReturnItemRequest{
			{ProductID: samosa.ID.String(), Quantity: 2},
			{ProductID: samosa.ID.String(), Quantity: 1},
		},
		Reason: "customer changed mind",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))

	// nothing restored, only the original sale entry remains
	assert.Equal(t, 8, *products.products[samosa.ID].CurrentStock)
	require.Len(t, movements.movements, 1)
}

func TestReturnItems_ProductNotOnBillRejected(t *testing.T) {
	svc, _, _, products, _ := buildBillingSvc(&config.Config{})
	fries := seedProduct(products, "Fries", 60, 10, 0)
	other := seedProduct(products, "Cola Can", 40, 10, 0)

	resp, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		Items:       []dto.BillItemRequest{{ProductID: fries.ID.String(), Quantity: 1}},
		PaymentMode: model.PayCash,
	})
	require.NoError(t, err)

	err = svc.ReturnItems(context.Background(), uuid.MustParse(resp.ID), dto.ReturnBillItemsRequest{
		Items:  []dto.ReturnItemRequest{{ProductID: other.ID.String(), Quantity: 1}},
		Reason: "wrong bill entry",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))
}

func TestReturnItems_OnlyCompletedBills(t *testing.T) {
	svc, bills, _, _, _ := buildBillingSvc(&config.Config{})
	bill := &model.Bill{ID: uuid.New(), BillNumber: 11, Status: model.BillCancelled}
	bills.bills[bill.ID] = bill

	err := svc.ReturnItems(context.Background(), bill.ID, dto.ReturnBillItemsRequest{
		Items:  []dto.ReturnItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
		Reason: "already cancelled",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apiCode(t, err))
}

func TestCreateBill_EmptyCartRejected(t *testing.T) {
	svc, _, _, _, _ := buildBillingSvc(&config.Config{})
	_, err := svc.CreateBill(context.Background(), uuid.New(), dto.CreateBillRequest{
		PaymentMode: model.PayCash,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))
}
