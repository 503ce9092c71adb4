package service

import (
	"context"
	"fmt"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// CreateOrder stages a customer request. Stock is not touched here;
	// it moves only when the order is billed.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) OrderService {
	return &orderService{orders: orders, products: products}
}

// orderTransitions is the forward-only status machine. Completed is absent
// on purpose: an order only completes through bill conversion, which flips
// the status inside the billing transaction.
var orderTransitions = map[string][]string{
	model.OrderPending:   {model.OrderPreparing, model.OrderCancelled},
	model.OrderPreparing: {model.OrderReady, model.OrderCancelled},
}

func canTransition(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.SeatNumber == nil && req.MobileNumber == nil {
		return nil, apierror.Validation("seat_number or mobile_number is required")
	}

	order := &model.Order{
		SeatNumber:   req.SeatNumber,
		MobileNumber: req.MobileNumber,
		Status:       model.OrderPending,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product_id: " + item.ProductID)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("product not found: " + item.ProductID)
		}
		if !p.Active {
			return nil, apierror.Validation(fmt.Sprintf("product %q is not available", p.Name))
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, model.OrderItem{
			ProductID: pid,
			Name:      p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	order.TotalAmount = total

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		num, err := s.orders.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		order.OrderNumber = num
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	return orderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	if !canTransition(order.Status, status) {
		return nil, apierror.InvalidState(fmt.Sprintf(
			"order %d cannot move from %q to %q", order.OrderNumber, order.Status, status))
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return orderToResponse(order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	var billID *string
	if o.BillID != nil {
		v := o.BillID.String()
		billID = &v
	}
	return &dto.OrderResponse{
		ID:           o.ID.String(),
		OrderNumber:  o.OrderNumber,
		SeatNumber:   o.SeatNumber,
		MobileNumber: o.MobileNumber,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		BillID:       billID,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
