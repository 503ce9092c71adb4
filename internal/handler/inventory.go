package handler

import (
	"net/http"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// AdjustStock godoc
// @Summary      Adjust product stock
// @Description  Applies a signed, audited stock correction. Override clamps at zero instead of rejecting.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Product UUID"
// @Param        body body dto.AdjustStockRequest true "Signed quantity, reason, optional override"
// @Success      200 {object} dto.ProductResponse
// @Failure      409 {object} apierror.Error
// @Router       /v1/products/{id}/stock [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary      Stock movement ledger
// @Description  Paginated, append-only audit trail of every stock change.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "Product UUID"
// @Param        type       query string false "sale | purchase | adjustment | return | cancellation | restock"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 100)"
// @Success      200 {object} dto.StockMovementListResponse
// @Router       /v1/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.StockMovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts godoc
// @Summary      Low-stock alerts
// @Description  Tracked products at or below their alert threshold.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StockAlertResponse
// @Router       /v1/stock/alerts [get]
func (h *InventoryHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.LowStockAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateReadyItem godoc
// @Summary      Create a ready-item template
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReadyItemRequest true "Template"
// @Success      201 {object} dto.ReadyItemResponse
// @Router       /v1/ready-items [post]
func (h *InventoryHandler) CreateReadyItem(c *gin.Context) {
	var req dto.CreateReadyItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateReadyItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListReadyItems godoc
// @Summary      List ready-item templates
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ReadyItemResponse
// @Router       /v1/ready-items [get]
func (h *InventoryHandler) ListReadyItems(c *gin.Context) {
	resp, err := h.svc.ListReadyItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteReadyItem godoc
// @Summary      Deactivate a ready-item template
// @Tags         inventory
// @Security     BearerAuth
// @Param        id path string true "Ready item UUID"
// @Success      204
// @Router       /v1/ready-items/{id} [delete]
func (h *InventoryHandler) DeleteReadyItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteReadyItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restock godoc
// @Summary      One-click restock
// @Description  Adds the template quantity (or an explicit one) to the linked product with a ledger entry.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "Ready item UUID"
// @Param        body body dto.RestockRequest true "Quantity; 0 uses the template default"
// @Success      200 {object} dto.ProductResponse
// @Router       /v1/ready-items/{id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
