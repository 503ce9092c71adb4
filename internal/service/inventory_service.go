package service

import (
	"context"
	"fmt"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	// AdjustStock applies a signed, audited correction to a tracked product.
	// Without override the result must stay >= 0; with override it is clamped
	// at zero.
	AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)

	CreateReadyItem(ctx context.Context, req dto.CreateReadyItemRequest) (*dto.ReadyItemResponse, error)
	ListReadyItems(ctx context.Context) ([]dto.ReadyItemResponse, error)
	DeleteReadyItem(ctx context.Context, id uuid.UUID) error
	// Restock adds quantity (or the template default when zero) to the linked
	// product with a ledger entry.
	Restock(ctx context.Context, readyItemID uuid.UUID, qty int) (*dto.ProductResponse, error)
}

type inventoryService struct {
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	readyItems repository.ReadyItemRepository
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	readyItems repository.ReadyItemRepository,
) InventoryService {
	return &inventoryService{products: products, movements: movements, readyItems: readyItems}
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if !p.Tracked() {
		return nil, apierror.Validation(fmt.Sprintf("product %q is not stock-tracked", p.Name))
	}

	var after int
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		cur, err := s.products.FindByIDTx(tx, productID)
		if err != nil {
			return err
		}
		before := *cur.CurrentStock

		rows, err := s.products.AdjustStockTx(tx, productID, req.Quantity, req.Override)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierror.InsufficientStock(fmt.Sprintf(
				"adjustment of %d would drive %q below zero (current %d)", req.Quantity, p.Name, before))
		}

		after = before + req.Quantity
		if req.Override && after < 0 {
			after = 0
		}

		mov := &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementAdjustment,
			Quantity:    req.Quantity,
			StockBefore: before,
			StockAfter:  after,
			Reason:      req.Reason,
		}
		return s.movements.CreateTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}

	p.CurrentStock = &after
	return productToResponse(p), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		product := ""
		if m.Product != nil {
			product = m.Product.Name
		}
		var ref *string
		if m.ReferenceID != nil {
			v := m.ReferenceID.String()
			ref = &v
		}
		items = append(items, dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Product:     product,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			ReferenceID: ref,
			CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.StockMovementListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	products, err := s.products.ListBelowMinAlert(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID:     p.ID.String(),
			Name:          p.Name,
			CurrentStock:  *p.CurrentStock,
			MinStockAlert: *p.MinStockAlert,
		})
	}
	return alerts, nil
}

func (s *inventoryService) CreateReadyItem(ctx context.Context, req dto.CreateReadyItemRequest) (*dto.ReadyItemResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("invalid product_id")
	}
	p, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if !p.Tracked() {
		return nil, apierror.Validation(fmt.Sprintf("product %q is not stock-tracked", p.Name))
	}

	ri := &model.ReadyItem{
		Name:       req.Name,
		ProductID:  pid,
		DefaultQty: req.DefaultQty,
		Active:     true,
	}
	if err := s.readyItems.Create(ctx, ri); err != nil {
		return nil, err
	}
	ri.Product = p
	return readyItemToResponse(ri), nil
}

func (s *inventoryService) ListReadyItems(ctx context.Context) ([]dto.ReadyItemResponse, error) {
	items, err := s.readyItems.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReadyItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *readyItemToResponse(&items[i]))
	}
	return out, nil
}

func (s *inventoryService) DeleteReadyItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.readyItems.FindByID(ctx, id); err != nil {
		return apierror.NotFound("ready item not found")
	}
	return s.readyItems.SoftDelete(ctx, id)
}

func (s *inventoryService) Restock(ctx context.Context, readyItemID uuid.UUID, qty int) (*dto.ProductResponse, error) {
	ri, err := s.readyItems.FindByID(ctx, readyItemID)
	if err != nil {
		return nil, apierror.NotFound("ready item not found")
	}
	if qty <= 0 {
		qty = ri.DefaultQty
	}

	p, err := s.products.FindByID(ctx, ri.ProductID)
	if err != nil {
		return nil, apierror.NotFound("linked product not found")
	}
	if !p.Tracked() {
		return nil, apierror.Validation(fmt.Sprintf("product %q is not stock-tracked", p.Name))
	}

	var after int
	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		cur, err := s.products.FindByIDTx(tx, ri.ProductID)
		if err != nil {
			return err
		}
		before := *cur.CurrentStock

		if err := s.products.IncrementStockTx(tx, ri.ProductID, qty); err != nil {
			return err
		}
		after = before + qty

		riRef := ri.ID
		mov := &model.StockMovement{
			ProductID:   ri.ProductID,
			Type:        model.MovementRestock,
			Quantity:    qty,
			StockBefore: before,
			StockAfter:  after,
			Reason:      fmt.Sprintf("Ready item %q restocked", ri.Name),
			ReferenceID: &riRef,
		}
		return s.movements.CreateTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}

	p.CurrentStock = &after
	return productToResponse(p), nil
}

func readyItemToResponse(ri *model.ReadyItem) *dto.ReadyItemResponse {
	product := ""
	if ri.Product != nil {
		product = ri.Product.Name
	}
	return &dto.ReadyItemResponse{
		ID:         ri.ID.String(),
		Name:       ri.Name,
		ProductID:  ri.ProductID.String(),
		Product:    product,
		DefaultQty: ri.DefaultQty,
		Active:     ri.Active,
	}
}
