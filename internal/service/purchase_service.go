package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	// CreatePurchase records a supplier invoice, increments stock for
	// product-linked lines and recomputes the supplier running totals, all
	// in one transaction.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) PurchaseService {
	return &purchaseService{
		purchases: purchases,
		suppliers: suppliers,
		products:  products,
		movements: movements,
	}
}

func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.Validation("invalid supplier_id")
	}
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, apierror.NotFound("supplier not found")
	}
	if !supplier.Active {
		return nil, apierror.Validation(fmt.Sprintf("supplier %q is inactive", supplier.Name))
	}

	purchase := &model.Purchase{
		SupplierID:    supplierID,
		InvoiceNumber: req.InvoiceNumber,
		GSTAmount:     req.GSTAmount,
		PaidAmount:    req.PaidAmount,
		Notes:         req.Notes,
	}
	if req.InvoiceDate != nil {
		d, err := time.Parse("2006-01-02", *req.InvoiceDate)
		if err != nil {
			return nil, apierror.Validation("invalid invoice_date")
		}
		purchase.InvoiceDate = &d
	}

	// invoiceAmount is always computed server-side: Σ line totals + GST.
	linesTotal := decimal.Zero
	for _, item := range req.Items {
		var productID *uuid.UUID
		if item.ProductID != nil {
			pid, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, apierror.Validation("invalid product_id: " + *item.ProductID)
			}
			if _, err := s.products.FindByID(ctx, pid); err != nil {
				return nil, apierror.NotFound("product not found: " + *item.ProductID)
			}
			productID = &pid
		}
		lineTotal := item.UnitRate.Mul(decimal.NewFromInt(int64(item.Quantity)))
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitRate:  item.UnitRate,
			LineTotal: lineTotal,
		})
		linesTotal = linesTotal.Add(lineTotal)
	}
	purchase.InvoiceAmount = linesTotal.Add(req.GSTAmount)

	if req.PaidAmount.GreaterThan(purchase.InvoiceAmount) {
		return nil, apierror.Validation(fmt.Sprintf(
			"paid amount %s exceeds invoice amount %s",
			req.PaidAmount.String(), purchase.InvoiceAmount.String()))
	}
	purchase.PendingAmount = purchase.InvoiceAmount.Sub(req.PaidAmount)

	err = runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		num, err := s.purchases.NextPurchaseNumber(ctx, tx)
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = num

		if err := s.purchases.Create(ctx, tx, purchase); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			if item.ProductID == nil {
				continue // raw-material line, supplier ledger only
			}
			p, err := s.products.FindByIDTx(tx, *item.ProductID)
			if err != nil {
				return err
			}
			if !p.Tracked() {
				continue
			}
			before := *p.CurrentStock

			if err := s.products.IncrementStockTx(tx, *item.ProductID, item.Quantity); err != nil {
				return err
			}

			purchaseRef := purchase.ID
			mov := &model.StockMovement{
				ProductID:   *item.ProductID,
				Type:        model.MovementPurchase,
				Quantity:    item.Quantity,
				StockBefore: before,
				StockAfter:  before + item.Quantity,
				Reason:      fmt.Sprintf("Purchase #%d from %s", num, supplier.Name),
				ReferenceID: &purchaseRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		purchased, pending, err := s.purchases.SumBySupplierTx(tx, supplierID)
		if err != nil {
			return err
		}
		return s.suppliers.UpdateTotalsTx(tx, supplierID, purchased, pending)
	})
	if err != nil {
		return nil, err
	}

	purchase.Supplier = supplier
	return purchaseToResponse(purchase), nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("purchase not found")
	}
	return purchaseToResponse(purchase), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	purchases, total, err := s.purchases.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *purchaseToResponse(&purchases[i]))
	}
	return &dto.PurchaseListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		var productID *string
		if item.ProductID != nil {
			v := item.ProductID.String()
			productID = &v
		}
		items = append(items, dto.PurchaseItemResponse{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitRate:  item.UnitRate,
			LineTotal: item.LineTotal,
		})
	}
	supplierName := ""
	if p.Supplier != nil {
		supplierName = p.Supplier.Name
	}
	var invoiceDate *string
	if p.InvoiceDate != nil {
		v := p.InvoiceDate.Format("2006-01-02")
		invoiceDate = &v
	}
	return &dto.PurchaseResponse{
		ID:             p.ID.String(),
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID.String(),
		Supplier:       supplierName,
		InvoiceNumber:  p.InvoiceNumber,
		InvoiceDate:    invoiceDate,
		Items:          items,
		InvoiceAmount:  p.InvoiceAmount,
		PaidAmount:     p.PaidAmount,
		PendingAmount:  p.PendingAmount,
		GSTAmount:      p.GSTAmount,
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
