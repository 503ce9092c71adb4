package handler

import (
	"net/http"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/middleware"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	svc     service.OrderService
	billing service.BillingService
}

func NewOrdersHandler(svc service.OrderService, billing service.BillingService) *OrdersHandler {
	return &OrdersHandler{svc: svc, billing: billing}
}

// CreateOrder godoc
// @Summary      Place an order
// @Description  Public self-order endpoint: snapshots menu prices, assigns an order number. Stock is untouched until billing.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateOrderRequest true "Items plus seat or mobile number"
// @Success      201 {object} dto.OrderResponse
// @Failure      400 {object} apierror.Error
// @Router       /v1/orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | preparing | ready | completed | cancelled | all"
// @Param        date   query string false "YYYY-MM-DD (default: today)"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.OrderListResponse
// @Router       /v1/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Moves the order along the forward-only status machine.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Order UUID"
// @Param        body body dto.UpdateOrderStatusRequest true "Target status"
// @Success      200 {object} dto.OrderResponse
// @Failure      409 {object} apierror.Error
// @Router       /v1/orders/{id}/status [put]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConvertToBill godoc
// @Summary      Convert an order into a bill
// @Description  Bills a preparing/ready order at its snapshot prices, decrements stock and marks the order completed.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Order UUID"
// @Param        body body dto.ConvertOrderRequest true "Payment and discount"
// @Success      201 {object} dto.BillResponse
// @Failure      403 {object} apierror.Error
// @Failure      409 {object} apierror.Error
// @Router       /v1/orders/{id}/convert [post]
func (h *OrdersHandler) ConvertToBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ConvertOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, _ := uuid.Parse(claims.UserID)

	resp, err := h.billing.ConvertOrder(c.Request.Context(), id, cashierID, claims.Role, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
