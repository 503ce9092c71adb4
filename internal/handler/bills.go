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

type BillsHandler struct{ svc service.BillingService }

func NewBillsHandler(svc service.BillingService) *BillsHandler { return &BillsHandler{svc: svc} }

// CreateBill godoc
// @Summary      Create a bill
// @Description  Direct cart checkout: re-prices items server-side, computes totals, validates payment and decrements stock atomically.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateBillRequest true "Cart, discount and payment"
// @Success      201  {object} dto.BillResponse
// @Failure      400  {object} apierror.Error
// @Failure      409  {object} apierror.Error
// @Router       /v1/bills [post]
func (h *BillsHandler) CreateBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreateBill(c.Request.Context(), cashierID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBill godoc
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.BillResponse
// @Failure      404 {object} apierror.Error
// @Router       /v1/bills/{id} [get]
func (h *BillsHandler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetBill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListBills godoc
// @Summary      List bills
// @Description  Paginated bill list filtered by date (default today) and status.
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "YYYY-MM-DD (default: today)"
// @Param        status query string false "completed | cancelled | all"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.BillListResponse
// @Router       /v1/bills [get]
func (h *BillsHandler) ListBills(c *gin.Context) {
	var filter dto.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListBills(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelBill godoc
// @Summary      Cancel a bill
// @Description  Flips the bill to cancelled and restores the stock it consumed, with ledger entries.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "Bill UUID"
// @Param        body body dto.CancelBillRequest true "Cancellation reason"
// @Success      204
// @Failure      409 {object} apierror.Error
// @Router       /v1/bills/{id} [delete]
func (h *BillsHandler) CancelBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.CancelBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CancelBill(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReturnItems godoc
// @Summary      Return billed items
// @Description  Restores stock for individual lines of a completed bill, with return ledger entries. Partial quantities allowed.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "Bill UUID"
// @Param        body body dto.ReturnBillItemsRequest true "Returned lines and reason"
// @Success      204
// @Failure      400 {object} apierror.Error
// @Failure      409 {object} apierror.Error
// @Router       /v1/bills/{id}/return [post]
func (h *BillsHandler) ReturnItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ReturnBillItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReturnItems(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
