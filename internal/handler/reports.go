package handler

import (
	"net/http"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) bindFilter(c *gin.Context) (dto.ReportFilter, bool) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	return filter, true
}

// Sales godoc
// @Summary      Sales by date
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: today)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200 {object} dto.SalesReportResponse
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Items godoc
// @Summary      Item-wise sales and profit
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: today)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200 {object} dto.ItemReportResponse
// @Router       /v1/reports/items [get]
func (h *ReportsHandler) Items(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ItemReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cashiers godoc
// @Summary      Collections per cashier
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: today)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200 {object} dto.CashierReportResponse
// @Router       /v1/reports/cashiers [get]
func (h *ReportsHandler) Cashiers(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.CashierReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Shows godoc
// @Summary      Collections per cinema show window
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "YYYY-MM-DD (default: today)"
// @Param        to   query string false "YYYY-MM-DD (default: today)"
// @Success      200 {object} dto.ShowReportResponse
// @Router       /v1/reports/shows [get]
func (h *ReportsHandler) Shows(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ShowReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
