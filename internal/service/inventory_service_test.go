package service_test

import (
	"context"
	"testing"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInventorySvc() (service.InventoryService, *stubProductRepo, *stubMovementRepo, *stubReadyItemRepo) {
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	readyItems := newStubReadyItemRepo()
	return service.NewInventoryService(products, movements, readyItems), products, movements, readyItems
}

func TestAdjustStock_PositiveDelta(t *testing.T) {
	svc, products, movements, _ := buildInventorySvc()
	p := seedProduct(products, "Water Bottle", 20, 10, 0)

	resp, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Quantity: 12,
		Reason:   "new carton received outside purchase flow",
	})
	require.NoError(t, err)
	assert.Equal(t, 22, *resp.CurrentStock)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, model.MovementAdjustment, mov.Type)
	assert.Equal(t, 12, mov.Quantity)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 22, mov.StockAfter)
	assert.Equal(t, "new carton received outside purchase flow", mov.Reason)
}

func TestAdjustStock_NegativeBelowZeroRejected(t *testing.T) {
	svc, products, movements, _ := buildInventorySvc()
	p := seedProduct(products, "Samosa", 15, 4, 0)

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Quantity: -6,
		Reason:   "spoilage",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInsufficientStock, apiCode(t, err))
	assert.Equal(t, 4, *products.products[p.ID].CurrentStock)
	assert.Empty(t, movements.movements)
}

func TestAdjustStock_OverrideClampsAtZero(t *testing.T) {
	svc, products, movements, _ := buildInventorySvc()
	p := seedProduct(products, "Samosa", 15, 4, 0)

	resp, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Quantity: -6,
		Reason:   "end-of-day write-off",
		Override: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, *resp.CurrentStock)
	assert.Equal(t, 0, *products.products[p.ID].CurrentStock)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, 4, movements.movements[0].StockBefore)
	assert.Equal(t, 0, movements.movements[0].StockAfter)
}

func TestAdjustStock_UntrackedProductRejected(t *testing.T) {
	svc, products, _, _ := buildInventorySvc()
	p := seedProduct(products, "Filter Coffee", 40, -1, 0)

	_, err := svc.AdjustStock(context.Background(), p.ID, dto.AdjustStockRequest{
		Quantity: 5,
		Reason:   "does not apply",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))
}

func TestLowStockAlerts(t *testing.T) {
	svc, products, _, _ := buildInventorySvc()
	seedProduct(products, "Popcorn", 50, 30, 10)       // healthy
	low := seedProduct(products, "Cola Can", 40, 3, 5) // at/below threshold
	seedProduct(products, "Masala Tea", 20, -1, 0)     // untracked, never alerts

	alerts, err := svc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, low.ID.String(), alerts[0].ProductID)
	assert.Equal(t, 3, alerts[0].CurrentStock)
	assert.Equal(t, 5, alerts[0].MinStockAlert)
}

func TestRestock_DefaultQtyFallback(t *testing.T) {
	svc, products, movements, _ := buildInventorySvc()
	p := seedProduct(products, "Veg Puff", 25, 6, 0)

	ri, err := svc.CreateReadyItem(context.Background(), dto.CreateReadyItemRequest{
		Name:       "Morning Puff Batch",
		ProductID:  p.ID.String(),
		DefaultQty: 30,
	})
	require.NoError(t, err)

	// zero quantity falls back to the template default
	resp, err := svc.Restock(context.Background(), uuid.MustParse(ri.ID), 0)
	require.NoError(t, err)
	assert.Equal(t, 36, *resp.CurrentStock)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, model.MovementRestock, mov.Type)
	assert.Equal(t, 30, mov.Quantity)

	// explicit quantity wins
	resp, err = svc.Restock(context.Background(), uuid.MustParse(ri.ID), 10)
	require.NoError(t, err)
	assert.Equal(t, 46, *resp.CurrentStock)
}

func TestCreateReadyItem_RequiresTrackedProduct(t *testing.T) {
	svc, products, _, _ := buildInventorySvc()
	p := seedProduct(products, "Fountain Drink", 35, -1, 0)

	_, err := svc.CreateReadyItem(context.Background(), dto.CreateReadyItemRequest{
		Name:       "Drink Batch",
		ProductID:  p.ID.String(),
		DefaultQty: 20,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apiCode(t, err))
}

func TestDeleteReadyItem_SoftDeletes(t *testing.T) {
	svc, products, _, readyItems := buildInventorySvc()
	p := seedProduct(products, "Veg Puff", 25, 6, 0)

	ri, err := svc.CreateReadyItem(context.Background(), dto.CreateReadyItemRequest{
		Name:       "Puff Batch",
		ProductID:  p.ID.String(),
		DefaultQty: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReadyItem(context.Background(), uuid.MustParse(ri.ID)))
	assert.False(t, readyItems.items[uuid.MustParse(ri.ID)].Active)

	listed, err := svc.ListReadyItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
